package model

// Role values stored on a user.  ADMIN unlocks inventory management
// endpoints; CUSTOMER can browse, book and cancel their own bookings.
const (
	RoleAdmin    = "ADMIN"
	RoleCustomer = "CUSTOMER"
)

// User is an account in the users store.  Only the bcrypt hash of the
// password is kept in memory and on disk.
//
// Fields:
//  ID           – unique identifier (e.g. "U4").
//  Name         – unique login name.
//  PasswordHash – bcrypt hash of the password.
//  Role         – RoleAdmin or RoleCustomer.
type User struct {
	ID           string
	Name         string
	PasswordHash string
	Role         string
}
