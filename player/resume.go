package player

import (
	"github.com/kinoteka-cli/kinoteka/key"
	"github.com/kinoteka-cli/kinoteka/log"
	"github.com/spf13/viper"
)

// ShouldResume reports whether playback should continue from position.
// A duration of 0 means it is unknown, in which case any positive position resumes.
func ShouldResume(position, duration int) bool {
	if position <= 0 || !viper.GetBool(key.PlayerResume) {
		return false
	}

	if duration <= 0 {
		return true
	}

	threshold := viper.GetInt(key.PlayerCompletionPercentage)
	if threshold <= 0 || threshold > 100 {
		threshold = 100
	}

	return position*100 < duration*threshold
}

// Resume seeks s to position when ShouldResume allows it. It reports whether a seek happened.
func Resume(s Seeker, position, duration int) (bool, error) {
	if !ShouldResume(position, duration) {
		return false, nil
	}

	if err := s.Seek(float64(position)); err != nil {
		return false, err
	}

	log.Infof("resumed playback at %ds", position)
	return true, nil
}
