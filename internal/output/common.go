package output

import (
	"io"
	"os"
	"time"
)

const reportDateTimeLayout = "2006-01-02 15:04:05"

func limitTop[T any](items []T, top int) []T {
	if top <= 0 || top >= len(items) {
		return items
	}
	return items[:top]
}

// openOutputWriter returns the destination for options: an explicit writer,
// a created file, or stdout. The returned closer is nil unless a file was opened.
func openOutputWriter(options OutputOptions) (io.Writer, io.Closer, error) {
	if options.Writer != nil {
		return options.Writer, nil, nil
	}
	if options.OutputPath == "" {
		return os.Stdout, nil, nil
	}
	file, err := os.Create(options.OutputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).Format(reportDateTimeLayout)
}

// truncateMessage shortens msg to maxLen runes, ending it with "...".
func truncateMessage(msg string, maxLen int) string {
	runes := []rune(msg)
	if len(runes) <= maxLen {
		return msg
	}
	return string(runes[:max(maxLen-3, 0)]) + "..."
}
