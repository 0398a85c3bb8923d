// ABOUTME: Asset loader for sound-effect clips
// ABOUTME: Walks a filesystem namespace, decodes and resamples each file into the clip registry
package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/Resonate-Protocol/sfxpool/pkg/audio"
	"github.com/Resonate-Protocol/sfxpool/pkg/audio/decode"
	"github.com/Resonate-Protocol/sfxpool/pkg/audio/resample"
	"github.com/Resonate-Protocol/sfxpool/pkg/sfx"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Stats summarizes a load
type Stats struct {
	Files      int    // files seen under the root
	Clips      int    // clips in the resulting registry
	Skipped    int    // unsupported or undecodable files
	Duplicates int    // files whose name replaced an earlier clip
	Bytes      uint64 // decoded PCM held in memory
}

// Loader builds a clip registry from audio files
type Loader struct {
	// FS is the filesystem to read from, e.g. os.DirFS(dir) or an embed.FS
	FS fs.FS

	// Root is the directory inside FS to walk (default: ".")
	Root string

	// Target is the output format; clips are resampled to its sample rate.
	// A zero sample rate keeps each clip's native rate.
	Target audio.Format

	// Raw, when set, is the layout of headerless .pcm and .raw files.
	// Without it those files are skipped.
	Raw *audio.Format

	// Workers bounds concurrent decodes (default: GOMAXPROCS)
	Workers int

	// Logger receives per-file diagnostics (default: log.Default())
	Logger *log.Logger
}

type decoded struct {
	path string
	clip *sfx.Clip
}

// Load walks Root and decodes every supported file. Files that fail to decode
// are logged and skipped; a missing root is an error. Clips are named by their
// base name without extension. When names collide the file that sorts last by
// path wins.
func (l *Loader) Load(ctx context.Context) (*sfx.Registry, Stats, error) {
	var stats Stats

	if l.FS == nil {
		return nil, stats, errors.New("assets: no filesystem")
	}
	logger := l.Logger
	if logger == nil {
		logger = log.Default()
	}
	root := l.Root
	if root == "" {
		root = "."
	}

	paths, err := l.collect(ctx, root, logger, &stats)
	if err != nil {
		return nil, stats, err
	}

	results := make([]decoded, len(paths))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	workers := l.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(workers)

	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			clip, err := l.loadFile(p)
			if err != nil {
				logger.Warn("Skipping audio file", "path", p, "error", err)
				mu.Lock()
				stats.Skipped++
				mu.Unlock()
				return nil
			}
			results[i] = decoded{path: p, clip: clip}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, stats, fmt.Errorf("asset loading aborted: %w", err)
	}

	b := sfx.NewRegistryBuilder()
	for _, r := range results {
		if r.clip == nil {
			continue
		}
		if b.Add(r.clip) {
			stats.Duplicates++
			logger.Warn("Duplicate clip name, later file wins", "clip", r.clip.Name, "path", r.path)
		}
	}
	reg := b.Build()

	stats.Clips = reg.Len()
	for _, name := range reg.Names() {
		clip, _ := reg.Lookup(name)
		stats.Bytes += clip.Buffer.Size()
	}

	logger.Debug("Assets loaded", "root", root, "files", stats.Files, "clips", stats.Clips,
		"skipped", stats.Skipped, "duplicates", stats.Duplicates)

	return reg, stats, nil
}

// collect returns the decodable files under root in sorted order
func (l *Loader) collect(ctx context.Context, root string, logger *log.Logger, stats *Stats) ([]string, error) {
	var paths []string

	err := fs.WalkDir(l.FS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		stats.Files++
		if _, err := l.decoderFor(p); err != nil {
			logger.Debug("Ignoring file", "path", p, "reason", "unsupported extension")
			stats.Skipped++
			return nil
		}
		paths = append(paths, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Strings(paths)
	return paths, nil
}

// loadFile decodes one file into a clip
func (l *Loader) loadFile(p string) (*sfx.Clip, error) {
	dec, err := l.decoderFor(p)
	if err != nil {
		return nil, err
	}

	f, err := l.FS.Open(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open: %w", err)
	}
	defer f.Close()

	buf, err := dec.Decode(f)
	if err != nil {
		return nil, err
	}
	if buf.Frames() == 0 {
		return nil, errors.New("no audio frames")
	}

	if l.Target.SampleRate > 0 {
		buf = resample.Buffer(buf, l.Target.SampleRate)
	}

	return sfx.NewClip(ClipName(p), buf), nil
}

// decoderFor picks the decoder for a file by extension
func (l *Loader) decoderFor(p string) (decode.Decoder, error) {
	ext := strings.ToLower(path.Ext(p))
	if l.Raw != nil && (ext == ".pcm" || ext == ".raw") {
		return decode.NewPCM(*l.Raw)
	}
	return decode.ForExtension(ext)
}

// ClipName derives a clip name from a file path: the base name without its
// extension
func ClipName(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}
