package osm2streets

import (
	"github.com/paulmach/osm"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// nameNormalizer upper-cases street names using full Unicode case mapping ('ß' becomes "SS").
// Not safe for concurrent use: one normalizer per resolution
type nameNormalizer struct {
	caser cases.Caser
}

func newNameNormalizer() *nameNormalizer {
	return &nameNormalizer{caser: cases.Upper(language.Und)}
}

func (n *nameNormalizer) normalize(name string) string {
	return n.caser.String(name)
}

// streetAccumulator collects node ids of every way matched to the street.
// Each segment keeps exact order of source way nodes
type streetAccumulator struct {
	street   Street
	segments [][]osm.NodeID
}

// streetIndex maps normalized street name to its accumulator.
// Keys are created before the pass only
type streetIndex struct {
	byName map[string]*streetAccumulator
	// Output order: position of first occurrence of each normalized name
	order []*streetAccumulator
}

// newStreetIndex builds index for given streets.
// Later duplicate overwrites street data of earlier one (but keeps its position) unless strict is set
func newStreetIndex(streets []Street, normalizer *nameNormalizer, strict bool) (*streetIndex, error) {
	idx := &streetIndex{
		byName: make(map[string]*streetAccumulator, len(streets)),
		order:  make([]*streetAccumulator, 0, len(streets)),
	}
	firstSeen := make(map[string]int, len(streets))
	for i, street := range streets {
		key := normalizer.normalize(street.Name)
		if acc, ok := idx.byName[key]; ok {
			if strict {
				return nil, &DuplicateNameError{Name: street.Name, Key: key, First: firstSeen[key], Index: i}
			}
			acc.street = street
			continue
		}
		acc := &streetAccumulator{
			street:   street,
			segments: [][]osm.NodeID{},
		}
		idx.byName[key] = acc
		idx.order = append(idx.order, acc)
		firstSeen[key] = i
	}
	return idx, nil
}

// lookup returns accumulator for already normalized name
func (idx *streetIndex) lookup(key string) (*streetAccumulator, bool) {
	acc, ok := idx.byName[key]
	return acc, ok
}

// appendSegment adds copy of way nodes as new segment
func (acc *streetAccumulator) appendSegment(nodes osm.WayNodes) {
	segment := make([]osm.NodeID, len(nodes))
	for i := range nodes {
		segment[i] = nodes[i].ID
	}
	acc.segments = append(acc.segments, segment)
}

func (idx *streetIndex) size() int {
	return len(idx.order)
}
