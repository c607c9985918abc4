package iocsv

import (
	"github.com/cheggaaa/pb/v3"
)

// NewBytesBar creates a progress bar that counts bytes of a CSV stream.
// Use its NewProxyReader to wrap the stream.
func NewBytesBar(total int64, prefix string) *pb.ProgressBar {
	bar := pb.Full.Start64(total)
	bar.Set(pb.Bytes, true)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
