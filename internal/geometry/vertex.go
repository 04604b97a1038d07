package geometry

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// WriteVertex emits coordinates in the immersed-boundary .vertex format:
// a count line followed by one "x y" pair per line.
func WriteVertex(w io.Writer, xs, ys []float64) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("geometry: coordinate length mismatch: %d vs %d", len(xs), len(ys))
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", len(xs))
	for i := range xs {
		fmt.Fprintf(bw, "%.10f %.10f\n", xs[i], ys[i])
	}
	return bw.Flush()
}

// SaveVertexFile writes a .vertex file to disk.
func SaveVertexFile(path string, xs, ys []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteVertex(f, xs, ys)
}

// ReadVertex parses the .vertex format back into coordinate slices.
func ReadVertex(r io.Reader) ([]float64, []float64, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		return nil, nil, fmt.Errorf("geometry: missing vertex count line")
	}
	n, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil {
		return nil, nil, fmt.Errorf("geometry: bad vertex count: %w", err)
	}

	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, nil, err
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, nil, err
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}
	if len(xs) != n {
		return nil, nil, fmt.Errorf("geometry: expected %d vertices, found %d", n, len(xs))
	}
	return xs, ys, nil
}
