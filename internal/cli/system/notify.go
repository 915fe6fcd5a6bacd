package system

import "github.com/habitforge/habitctl/internal/notifier"

func notifyOnce(text string) error {
	return notifier.New().Notify(text)
}
