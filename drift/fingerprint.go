package drift

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes the cleaned sample set, so two summaries can be traced back to
// the same input regardless of the file it was read from.
func Fingerprint(age, distance []float64) string {
	d := xxhash.New()
	var buf [8]byte
	for _, col := range [][]float64{age, distance} {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(col)))
		d.Write(buf[:])
		for _, v := range col {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			d.Write(buf[:])
		}
	}
	return fmt.Sprintf("%016x", d.Sum64())
}
