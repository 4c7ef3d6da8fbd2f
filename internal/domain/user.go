package domain

import "time"

// User is a stored account record.
type User struct {
	ID        string
	Username  string
	Email     string
	FullName  string
	Role      Role
	Active    bool
	CreatedAt time.Time
	LastLogin *time.Time
}

// Session is a server-side login session identified by an opaque token.
type Session struct {
	Token     string
	UserID    string
	Username  string
	Email     string
	FullName  string
	Role      Role
	LoginTime time.Time
	IPAddress string
	UserAgent string
}

// Project is a saved generation project owned by a user.
type Project struct {
	ID          int64
	UserID      string
	Name        string
	Description string
	Language    string
	Framework   string
	Status      string
	LinesOfCode int
	FilesCount  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProjectStats aggregates a user's saved projects for the profile page.
type ProjectStats struct {
	TotalProjects     int
	CompletedProjects int
	DraftProjects     int
	TotalLines        int
}
