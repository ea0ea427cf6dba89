package index

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/kass/go-province-map/pkg/province"
)

func init() {
	// Extra property values arrive as decoded JSON.
	gob.Register(map[string]interface{}{})
	gob.Register([]interface{}{})
	gob.Register(float64(0))
	gob.Register("")
	gob.Register(false)
}

// cacheData is the serializable form of a built province set.
type cacheData struct {
	Provinces []*province.Province
	Count     int64
}

// SaveToFile writes the built provinces to a gob cache file so repeated
// viewer launches skip re-projection.
func (idx *ProvinceIndex) SaveToFile(filename string) error {
	data := cacheData{
		Provinces: idx.All(),
		Count:     idx.Count(),
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := gob.NewEncoder(file)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode province cache: %w", err)
	}

	return nil
}

// LoadFromFile replaces the index contents with a previously saved
// province set.
func (idx *ProvinceIndex) LoadFromFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var data cacheData
	decoder := gob.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return fmt.Errorf("failed to decode province cache: %w", err)
	}

	idx.Clear()
	idx.Insert(data.Provinces)
	return nil
}
