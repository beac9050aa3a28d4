package encryption

import (
	"fmt"
	"os"
)

// progressFunc observes streaming progress after each chunk with processed
// and total byte counts.
type progressFunc func(done, total int64)

// progressFor returns a console progress reporter for the given file, or
// nil when progress reporting is off. The reporter rewrites its line in
// place and finishes it once the file is done.
func (p *Processor) progressFor(filename string) progressFunc {
	if !p.cfg.Progress || p.cfg.Quiet {
		return nil
	}

	return func(done, total int64) {
		if total <= 0 {
			return
		}

		const percent = 100.0

		fmt.Fprintf(os.Stderr, "\r%s [%6.2f%%]", filename, percent*float64(done)/float64(total))

		if done >= total {
			fmt.Fprintln(os.Stderr)
		}
	}
}
