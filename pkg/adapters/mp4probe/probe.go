// Package mp4probe inspects MP4 files produced by the transcoder.
package mp4probe

import (
	"errors"
	"fmt"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/playblast/pkg/ports"
)

// Codec names reported in ports.MediaInfo.
const (
	CodecH264    = "h264"
	CodecHEVC    = "hevc"
	CodecAV1     = "av1"
	CodecMPEG4   = "mpeg4"
	CodecUnknown = "unknown"
)

// ErrNoVideoTrack is returned when a file has no video track.
var ErrNoVideoTrack = errors.New("mp4probe: no video track found")

// Prober implements ports.MediaProber for MP4 files.
type Prober struct{}

// New creates a new Prober.
func New() *Prober {
	return &Prober{}
}

// Probe decodes the box structure of the file at path and describes its
// first video track.
func (p *Prober) Probe(path string) (ports.MediaInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ports.MediaInfo{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	mp4File, err := mp4.DecodeFile(f)
	if err != nil {
		return ports.MediaInfo{}, fmt.Errorf("decode mp4: %w", err)
	}
	return describe(mp4File)
}

func describe(mp4File *mp4.File) (ports.MediaInfo, error) {
	moov := mp4File.Moov
	if moov == nil && mp4File.Init != nil {
		moov = mp4File.Init.Moov
	}
	if moov == nil {
		return ports.MediaInfo{}, ErrNoVideoTrack
	}

	info := ports.MediaInfo{Tracks: len(moov.Traks)}
	if moov.Mvhd != nil && moov.Mvhd.Timescale > 0 {
		info.DurationMs = int64(moov.Mvhd.Duration * 1000 / uint64(moov.Mvhd.Timescale))
	}

	for _, trak := range moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
			continue
		}
		info.Codec = trackCodec(trak)
		if trak.Tkhd != nil {
			info.Width = int(trak.Tkhd.Width >> 16)
			info.Height = int(trak.Tkhd.Height >> 16)
		}
		if info.DurationMs == 0 && trak.Mdia.Mdhd != nil && trak.Mdia.Mdhd.Timescale > 0 {
			info.DurationMs = int64(trak.Mdia.Mdhd.Duration * 1000 / uint64(trak.Mdia.Mdhd.Timescale))
		}
		return info, nil
	}
	return info, ErrNoVideoTrack
}

func trackCodec(trak *mp4.TrakBox) string {
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return CodecUnknown
	}
	for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
		switch child.Type() {
		case "avc1", "avc3":
			return CodecH264
		case "hvc1", "hev1":
			return CodecHEVC
		case "av01":
			return CodecAV1
		case "mp4v":
			return CodecMPEG4
		}
	}
	return CodecUnknown
}

var _ ports.MediaProber = (*Prober)(nil)
