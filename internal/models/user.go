package models

// User mirrors the user record returned by GET /api/users/current.
// The server owns the record; this struct is replaced wholesale whenever
// it is refetched.
type User struct {
	Username                     string `json:"username"`
	Email                        string `json:"email,omitempty"`
	EmailVerified                bool   `json:"emailVerified"`
	ProfilePicURL                string `json:"profilePicUrl,omitempty"`
	HasBeenPromptedForProfilePic bool   `json:"hasBeenPromptedForProfilePic"`
}

// HasPlaceholderUsername reports whether the username is a server-generated
// placeholder (assigned on email-only signup) rather than one the user chose.
func (u User) HasPlaceholderUsername() bool {
	return len(u.Username) >= 5 && u.Username[:5] == "user_"
}

// PictureSatisfied reports whether the profile-picture onboarding
// requirement is met, either by an uploaded picture or by the user having
// declined the prompt.
func (u User) PictureSatisfied() bool {
	return u.ProfilePicURL != "" || u.HasBeenPromptedForProfilePic
}
