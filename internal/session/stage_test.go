package session

import (
	"testing"

	"github.com/habitforge/habitctl/internal/constants"
	"github.com/habitforge/habitctl/internal/models"
)

func TestStageFor_RoutingOrder(t *testing.T) {
	cases := []struct {
		name string
		user models.User
		want constants.Stage
	}{
		{
			name: "no email",
			user: models.User{Username: "alice"},
			want: constants.StageNeedsEmail,
		},
		{
			name: "email not verified",
			user: models.User{Username: "alice", Email: "a@b.co"},
			want: constants.StageNeedsVerification,
		},
		{
			name: "placeholder username",
			user: models.User{Username: "user_1234", Email: "a@b.co", EmailVerified: true},
			want: constants.StageNeedsUsername,
		},
		{
			name: "empty username",
			user: models.User{Email: "a@b.co", EmailVerified: true},
			want: constants.StageNeedsUsername,
		},
		{
			name: "picture not addressed",
			user: models.User{Username: "alice", Email: "a@b.co", EmailVerified: true},
			want: constants.StageNeedsPicture,
		},
		{
			name: "picture uploaded",
			user: models.User{Username: "alice", Email: "a@b.co", EmailVerified: true, ProfilePicURL: "https://cdn/x.png"},
			want: constants.StageOnboarded,
		},
		{
			name: "picture prompt declined",
			user: models.User{Username: "alice", Email: "a@b.co", EmailVerified: true, HasBeenPromptedForProfilePic: true},
			want: constants.StageOnboarded,
		},
		{
			name: "email outranks username",
			user: models.User{Username: "user_1234", EmailVerified: true},
			want: constants.StageNeedsEmail,
		},
		{
			name: "verification outranks picture",
			user: models.User{Username: "alice", Email: "a@b.co", ProfilePicURL: "https://cdn/x.png"},
			want: constants.StageNeedsVerification,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StageFor(tc.user); got != tc.want {
				t.Errorf("StageFor(%+v) = %v, want %v", tc.user, got, tc.want)
			}
		})
	}
}

func TestStageFor_Deterministic(t *testing.T) {
	u := models.User{Username: "user_99", Email: "a@b.co", EmailVerified: true}
	first := StageFor(u)
	for i := 0; i < 10; i++ {
		if got := StageFor(u); got != first {
			t.Fatalf("StageFor changed between calls: %v then %v", first, got)
		}
	}
}
