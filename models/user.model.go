package models

import "time"

// User represents a storefront customer. Created at signup, read at
// login; the password field holds a bcrypt hash and never leaves the
// server.
type User struct {
	ID        int       `bson:"_id" json:"id"`
	Email     string    `bson:"email" json:"email"`
	Password  string    `bson:"password" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// AdminUser is the admin-panel account, seeded once at provisioning
// time. The password is stored in clear text to match the seeded
// credentials; hash it before exposing this beyond a trusted deployment.
type AdminUser struct {
	ID       int    `bson:"_id" json:"id"`
	Username string `bson:"username" json:"username"`
	Password string `bson:"password" json:"-"`
}

// PublicUser is the client-facing projection returned by the auth
// endpoints.
type PublicUser struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}
