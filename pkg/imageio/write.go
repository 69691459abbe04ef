package imageio

import (
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/unshred/pkg/errors"
)

// FormatFor returns the output format for path, chosen by file extension.
// Standard output always gets PNG.
func FormatFor(path string) (imaging.Format, error) {
	if path == Stdio {
		return imaging.PNG, nil
	}
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidFormat, err,
			"unsupported output extension %q", filepath.Ext(path))
	}
	return f, nil
}

// Write encodes img to w in the given format.
func Write(w io.Writer, img image.Image, format imaging.Format) error {
	if err := imaging.Encode(w, img, format); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "encode %s", format)
	}
	return nil
}

// Save writes img to path, or PNG to standard output when path is "-".
// The format is checked before any file is created.
func Save(img image.Image, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	if path == Stdio {
		return Write(os.Stdout, img, format)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", path)
	}
	if err := Write(f, img, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "close %s", path)
	}
	return nil
}
