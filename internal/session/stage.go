package session

import (
	"github.com/habitforge/habitctl/internal/constants"
	"github.com/habitforge/habitctl/internal/models"
)

// StageFor routes a user record to the first unmet onboarding requirement,
// in the fixed order email, verification, username, profile picture. It is
// deterministic: the same record always yields the same stage.
func StageFor(u models.User) constants.Stage {
	switch {
	case u.Email == "":
		return constants.StageNeedsEmail
	case !u.EmailVerified:
		return constants.StageNeedsVerification
	case u.Username == "" || u.HasPlaceholderUsername():
		return constants.StageNeedsUsername
	case !u.PictureSatisfied():
		return constants.StageNeedsPicture
	default:
		return constants.StageOnboarded
	}
}
