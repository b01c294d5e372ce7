// Package lconfig loads wire-scan acquisition files. A .dat file carries a
// text header describing the acquisition (sample rate, analog input
// channels, digital input stream mask, and meta parameters such as the wire
// radii) followed by a "#:" marker and whitespace-separated sample rows:
// one column per analog channel plus, when a digital stream is configured,
// a trailing integer column with the digital word for that sample.
package lconfig

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the parsed acquisition header of one .dat file.
type Config struct {
	// SampleHz is the acquisition sample rate.
	SampleHz float64
	// AiChannels lists the configured analog input channels in column
	// order.
	AiChannels []int
	// DiStream is the digital input stream channel mask; zero when no
	// digital stream was recorded.
	DiStream int
	// MetaValues holds the numeric meta parameters (x, z, r0, r1, ...).
	MetaValues map[string]float64
}

// Data is one loaded recording: the header plus the sample columns. It
// implements the wire.Recording collaborator interface.
type Data struct {
	config   Config
	channels [][]float64
	di       []uint16
}

// Config returns the parsed acquisition header.
func (d *Data) Config() Config { return d.config }

// Channel returns the ordered samples for analog channel column i, or nil
// when the column does not exist.
func (d *Data) Channel(i int) []float64 {
	if i < 0 || i >= len(d.channels) {
		return nil
	}
	return d.channels[i]
}

// NData returns the number of samples per channel.
func (d *Data) NData() int {
	if len(d.channels) == 0 {
		return len(d.di)
	}
	return len(d.channels[0])
}

// DiStream returns the digital input stream channel mask.
func (d *Data) DiStream() int { return d.config.DiStream }

// Meta looks up a numeric meta parameter.
func (d *Data) Meta(key string) (float64, bool) {
	v, ok := d.config.MetaValues[key]
	return v, ok
}

// DiEvents returns the sample indices at which the digital bit changes
// state relative to the previous sample.
func (d *Data) DiEvents(bit int) []int {
	mask := uint16(1) << uint(bit)
	var events []int
	for i := 1; i < len(d.di); i++ {
		if (d.di[i]^d.di[i-1])&mask != 0 {
			events = append(events, i)
		}
	}
	return events
}

// Load reads and parses one .dat file.
func Load(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}
	defer f.Close()

	d := &Data{config: Config{MetaValues: make(map[string]float64)}}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	lineno := 0
	inData := false
	ncols := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if !inData {
			if strings.HasPrefix(line, "#:") {
				// Data marker; the remainder is the acquisition timestamp.
				inData = true
				ncols = len(d.config.AiChannels)
				if d.config.DiStream != 0 {
					ncols++
				}
				continue
			}
			if strings.HasPrefix(line, "#") {
				continue
			}
			if err := d.parseHeaderLine(line); err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, lineno, err)
			}
			continue
		}
		if err := d.parseDataLine(line, ncols); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineno, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read recording: %w", err)
	}
	if !inData {
		return nil, fmt.Errorf("%s: no data marker (#:) found", path)
	}
	return d, nil
}

func (d *Data) parseHeaderLine(line string) error {
	fields := strings.Fields(line)
	switch fields[0] {
	case "samplehz":
		if len(fields) != 2 {
			return fmt.Errorf("samplehz wants 1 value, got %d", len(fields)-1)
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return fmt.Errorf("bad samplehz %q: %w", fields[1], err)
		}
		d.config.SampleHz = v
	case "aichannel":
		if len(fields) != 2 {
			return fmt.Errorf("aichannel wants 1 value, got %d", len(fields)-1)
		}
		ch, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("bad aichannel %q: %w", fields[1], err)
		}
		d.config.AiChannels = append(d.config.AiChannels, ch)
		d.channels = append(d.channels, nil)
	case "distream":
		if len(fields) != 2 {
			return fmt.Errorf("distream wants 1 value, got %d", len(fields)-1)
		}
		mask, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("bad distream %q: %w", fields[1], err)
		}
		d.config.DiStream = mask
	case "meta":
		if len(fields) != 3 {
			return fmt.Errorf("meta wants a name and a value, got %q", line)
		}
		v, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return fmt.Errorf("bad meta value %q for %s: %w", fields[2], fields[1], err)
		}
		d.config.MetaValues[fields[1]] = v
	default:
		// Unknown directives are preserved by the acquisition tool for
		// its own use; skip them rather than reject the file.
	}
	return nil
}

func (d *Data) parseDataLine(line string, ncols int) error {
	fields := strings.Fields(line)
	if len(fields) != ncols {
		return fmt.Errorf("want %d columns, got %d", ncols, len(fields))
	}
	for i := range d.channels {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return fmt.Errorf("bad sample %q: %w", fields[i], err)
		}
		d.channels[i] = append(d.channels[i], v)
	}
	if d.config.DiStream != 0 {
		word, err := strconv.ParseUint(fields[ncols-1], 10, 16)
		if err != nil {
			return fmt.Errorf("bad digital word %q: %w", fields[ncols-1], err)
		}
		d.di = append(d.di, uint16(word))
	}
	return nil
}
