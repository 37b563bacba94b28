// Package config maps persisted settings onto a typed configuration.
package config

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/user/playblast/pkg/orchestrator"
	"github.com/user/playblast/pkg/pipeline"
	"github.com/user/playblast/pkg/ports"
	"github.com/user/playblast/pkg/remote"
)

// Settings keys.
const (
	KeyFFmpegPath     = "ffmpeg.path"
	KeyOutPath        = "out.path"
	KeyResolution     = "image.resolution"
	KeyQuality        = "image.quality"
	KeyScale          = "image.scale"
	KeyFramePadding   = "image.fpadding"
	KeyViewer         = "out.viewer"
	KeyOrnaments      = "out.ornaments"
	KeyRemoveTemp     = "out.remove_temp"
	KeyOffscreen      = "out.offscreen"
	KeyClearCache     = "out.clear_cache"
	KeyTimeMode       = "time.mode"
	KeyTimeStart      = "time.start"
	KeyTimeEnd        = "time.end"
	KeyRemotePort     = "remote.port"
	KeyAutoConnect    = "remote.auto_connect"
	KeyRemoteTimeout  = "remote.timeout"
	KeyAlwaysOnTop    = "window.always_on_top"
	KeyWindowGeometry = "window.geometry"
)

// Resolution is a named capture size.
type Resolution struct {
	Name   string
	Width  int
	Height int
}

// Resolutions is the preset table indexed by image.resolution.
var Resolutions = []Resolution{
	{Name: "320x480", Width: 320, Height: 480},
	{Name: "640x480", Width: 640, Height: 480},
	{Name: "HD_540", Width: 960, Height: 540},
	{Name: "HD_720", Width: 1280, Height: 720},
	{Name: "HD_1080", Width: 1920, Height: 1080},
}

// DefaultResolution is the index of the default preset.
const DefaultResolution = 3

// FindResolution looks a preset up by name or index.
func FindResolution(s string) (int, bool) {
	if i, err := strconv.Atoi(s); err == nil {
		return i, i >= 0 && i < len(Resolutions)
	}
	for i, r := range Resolutions {
		if strings.EqualFold(r.Name, s) {
			return i, true
		}
	}
	return 0, false
}

// Config represents the full persisted configuration.
type Config struct {
	// Output
	FFmpegPath string
	OutputPath string

	// Image
	Resolution   int // index into Resolutions
	Quality      int
	Scale        float64
	FramePadding int

	// Flags
	Viewer     bool
	Ornaments  bool
	RemoveTemp bool
	Offscreen  bool
	ClearCache bool

	// Time range
	TimeMode pipeline.TimeMode
	Start    float64
	End      float64

	// Remote. AutoConnect is read by interactive frontends that connect
	// on open; the CLI connects per command.
	Port         int
	AutoConnect  bool
	ReplyTimeout time.Duration

	// Window state of interactive frontends, kept so they share the
	// settings file with the CLI.
	AlwaysOnTop    bool
	WindowGeometry string
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Resolution:   DefaultResolution,
		Quality:      100,
		Scale:        1.0,
		FramePadding: 4,

		Viewer:     true,
		Ornaments:  true,
		RemoveTemp: true,
		Offscreen:  false,
		ClearCache: true,

		TimeMode: pipeline.TimePlayback,
		Start:    1,
		End:      120,

		Port:         remote.DefaultPort,
		AutoConnect:  true,
		ReplyTimeout: remote.DefaultReplyTimeout,
	}
}

// Load reads every setting, falling back to Defaults for absent keys.
// Absent keys are recorded with their default by stores that do so.
func Load(s ports.Settings) (Config, error) {
	d := Defaults()
	var errs []string
	get := func(key string, def any) any { return s.Get(key, def) }

	cfg := Config{}
	cfg.FFmpegPath = asString(get(KeyFFmpegPath, d.FFmpegPath))
	cfg.OutputPath = asString(get(KeyOutPath, d.OutputPath))

	var err error
	if cfg.Resolution, err = asInt(get(KeyResolution, d.Resolution)); err != nil {
		errs = append(errs, fmt.Sprintf("%s: %v", KeyResolution, err))
	}
	if cfg.Quality, err = asInt(get(KeyQuality, d.Quality)); err != nil {
		errs = append(errs, fmt.Sprintf("%s: %v", KeyQuality, err))
	}
	if cfg.Scale, err = asFloat(get(KeyScale, d.Scale)); err != nil {
		errs = append(errs, fmt.Sprintf("%s: %v", KeyScale, err))
	}
	if cfg.FramePadding, err = asInt(get(KeyFramePadding, d.FramePadding)); err != nil {
		errs = append(errs, fmt.Sprintf("%s: %v", KeyFramePadding, err))
	}

	bools := []struct {
		key string
		dst *bool
		def bool
	}{
		{KeyViewer, &cfg.Viewer, d.Viewer},
		{KeyOrnaments, &cfg.Ornaments, d.Ornaments},
		{KeyRemoveTemp, &cfg.RemoveTemp, d.RemoveTemp},
		{KeyOffscreen, &cfg.Offscreen, d.Offscreen},
		{KeyClearCache, &cfg.ClearCache, d.ClearCache},
		{KeyAutoConnect, &cfg.AutoConnect, d.AutoConnect},
		{KeyAlwaysOnTop, &cfg.AlwaysOnTop, d.AlwaysOnTop},
	}
	for _, bv := range bools {
		if *bv.dst, err = asBool(get(bv.key, bv.def)); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", bv.key, err))
		}
	}

	if cfg.TimeMode, err = pipeline.ParseTimeMode(asString(get(KeyTimeMode, d.TimeMode.String()))); err != nil {
		errs = append(errs, fmt.Sprintf("%s: %v", KeyTimeMode, err))
	}
	if cfg.Start, err = asFloat(get(KeyTimeStart, d.Start)); err != nil {
		errs = append(errs, fmt.Sprintf("%s: %v", KeyTimeStart, err))
	}
	if cfg.End, err = asFloat(get(KeyTimeEnd, d.End)); err != nil {
		errs = append(errs, fmt.Sprintf("%s: %v", KeyTimeEnd, err))
	}

	if cfg.Port, err = asInt(get(KeyRemotePort, d.Port)); err != nil {
		errs = append(errs, fmt.Sprintf("%s: %v", KeyRemotePort, err))
	}
	if cfg.ReplyTimeout, err = asDuration(get(KeyRemoteTimeout, d.ReplyTimeout.String())); err != nil {
		errs = append(errs, fmt.Sprintf("%s: %v", KeyRemoteTimeout, err))
	}
	cfg.WindowGeometry = asString(get(KeyWindowGeometry, d.WindowGeometry))

	if len(errs) > 0 {
		return cfg, fmt.Errorf("invalid settings: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// Save writes every field of c to s.
func Save(s ports.Settings, c Config) error {
	values := map[string]any{
		KeyFFmpegPath:     c.FFmpegPath,
		KeyOutPath:        c.OutputPath,
		KeyResolution:     c.Resolution,
		KeyQuality:        c.Quality,
		KeyScale:          c.Scale,
		KeyFramePadding:   c.FramePadding,
		KeyViewer:         c.Viewer,
		KeyOrnaments:      c.Ornaments,
		KeyRemoveTemp:     c.RemoveTemp,
		KeyOffscreen:      c.Offscreen,
		KeyClearCache:     c.ClearCache,
		KeyTimeMode:       c.TimeMode.String(),
		KeyTimeStart:      c.Start,
		KeyTimeEnd:        c.End,
		KeyRemotePort:     c.Port,
		KeyAutoConnect:    c.AutoConnect,
		KeyRemoteTimeout:  c.ReplyTimeout.String(),
		KeyAlwaysOnTop:    c.AlwaysOnTop,
		KeyWindowGeometry: c.WindowGeometry,
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := s.Set(k, values[k]); err != nil {
			return fmt.Errorf("save %s: %w", k, err)
		}
	}
	return nil
}

// ParseValue converts command-line text for key into the type Load
// expects, so values written through a CLI round-trip.
func ParseValue(key, text string) (any, error) {
	switch key {
	case KeyResolution:
		i, ok := FindResolution(text)
		if !ok {
			return nil, fmt.Errorf("unknown resolution %q", text)
		}
		return i, nil
	case KeyQuality, KeyFramePadding, KeyRemotePort:
		return asInt(text)
	case KeyScale, KeyTimeStart, KeyTimeEnd:
		return asFloat(text)
	case KeyViewer, KeyOrnaments, KeyRemoveTemp, KeyOffscreen, KeyClearCache, KeyAutoConnect, KeyAlwaysOnTop:
		return asBool(text)
	case KeyTimeMode:
		m, err := pipeline.ParseTimeMode(text)
		if err != nil {
			return nil, err
		}
		return m.String(), nil
	case KeyRemoteTimeout:
		v, err := asDuration(text)
		if err != nil {
			return nil, err
		}
		return v.String(), nil
	case KeyFFmpegPath, KeyOutPath, KeyWindowGeometry:
		return text, nil
	default:
		return nil, fmt.Errorf("unknown setting %q", key)
	}
}

// Size returns the capture size of the selected preset.
func (c Config) Size() (int, int, error) {
	if c.Resolution < 0 || c.Resolution >= len(Resolutions) {
		return 0, 0, fmt.Errorf("resolution index %d outside 0-%d", c.Resolution, len(Resolutions)-1)
	}
	r := Resolutions[c.Resolution]
	return r.Width, r.Height, nil
}

// ToOrchestratorConfig converts Config to orchestrator.Config. encoder is
// the resolved encoder binary.
func (c Config) ToOrchestratorConfig(encoder string) (orchestrator.Config, error) {
	w, h, err := c.Size()
	if err != nil {
		return orchestrator.Config{}, err
	}
	return orchestrator.Config{
		OutputPath:  c.OutputPath,
		EncoderPath: encoder,

		Port: c.Port,

		Width:        w,
		Height:       h,
		Quality:      c.Quality,
		Scale:        c.Scale,
		FramePadding: c.FramePadding,

		TimeMode: c.TimeMode,
		Start:    c.Start,
		End:      c.End,

		ClearCache:    c.ClearCache,
		ShowOrnaments: c.Ornaments,
		Offscreen:     c.Offscreen,

		RemoveIntermediate: c.RemoveTemp,
		OpenViewer:         c.Viewer,
	}, nil
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func asInt(v any) (int, error) {
	switch t := v.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case uint64:
		return int(t), nil
	case float64:
		if t != math.Trunc(t) {
			return 0, fmt.Errorf("%v is not an integer", t)
		}
		return int(t), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, fmt.Errorf("%q is not an integer", t)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("unexpected %T", v)
	}
}

func asFloat(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", t)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("unexpected %T", v)
	}
}

func asBool(v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case int:
		return t != 0, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		if err != nil {
			return false, fmt.Errorf("%q is not a boolean", t)
		}
		return b, nil
	default:
		return false, fmt.Errorf("unexpected %T", v)
	}
}

func asDuration(v any) (time.Duration, error) {
	switch t := v.(type) {
	case time.Duration:
		return t, nil
	case int:
		return time.Duration(t) * time.Second, nil
	case float64:
		return time.Duration(t * float64(time.Second)), nil
	case string:
		d, err := time.ParseDuration(strings.TrimSpace(t))
		if err != nil {
			return 0, fmt.Errorf("%q is not a duration", t)
		}
		return d, nil
	default:
		return 0, fmt.Errorf("unexpected %T", v)
	}
}
