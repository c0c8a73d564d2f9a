package game

import (
	"github.com/ncruces/zenity"
	"github.com/pkg/errors"
)

// selectAudioFile asks the user for a track. A cancelled dialog returns an
// empty path and no error.
func selectAudioFile() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", nil
	}
	return filename, errors.Wrap(err, "select audio file")
}
