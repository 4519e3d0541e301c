package domain

// User is an account that can hold a role and be referenced by products as
// admin, seller, or client. Entities reference each other by id only; the
// projection layer resolves ids to nested representations on demand, so no
// live bidirectional object graph ever exists in memory.
//
// PasswordHash is write-only data: it is stored bcrypt-hashed and is excluded
// from every registered view, every error payload, and every log line.
type User struct {
	ID           string `bson:"_id,omitempty"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password"`
	RoleID       string `bson:"role_id,omitempty"` // empty = no role assigned
}
