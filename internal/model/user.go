package model

import "time"

// Role values stored in users.role. A user is either a citizen who files
// reports or an authority account that triages and resolves them. The role
// is fixed at registration and never updated afterwards.
const (
    RoleCitizen   = "citizen"
    RoleAuthority = "authority"
)

// User represents an application user record as stored in the `users`
// table. These structs are used internally by the repository layer;
// handlers define separate response types with appropriate JSON tags.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name.
//  PasswordHash – bcrypt hashed password.
//  Role         – citizen or authority.
//  FullName     – display name shown on reports and comments.
//  CreatedAt    – timestamp of creation.
type User struct {
    ID           uint64    // users.id
    Username     string    // users.username
    PasswordHash string    // users.password_hash
    Role         string    // users.role
    FullName     string    // users.full_name
    CreatedAt    time.Time // users.created_at
}

// Authority is a row in the `authorities` reference table. The set is
// small and fixed (MCD, PWD, DJB, NDMC, Cantonment Board); reports carry
// a foreign key into it.
type Authority struct {
    ID   uint64 // authorities.id
    Name string // authorities.name
}
