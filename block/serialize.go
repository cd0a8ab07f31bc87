package block

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/plaquette/pangraph/cigar"
)

// MarshalJSON encodes b in the canonical on-disk form of spec.md §6: sorted
// numeric keys throughout, so byte-equal output indicates semantic equality
// (required by the accuracy harness this core feeds). encoding/json's
// default map handling sorts keys as strings, which would put "10" before
// "2"; this writes the object by hand to keep the sort numeric.
func (b *Block) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	writeString(&buf, "id", b.ID)
	buf.WriteByte(',')
	writeString(&buf, "seq", string(b.Consensus))
	buf.WriteByte(',')

	buf.WriteString(`"gaps":{`)
	gapKeys := make([]Pos, 0, len(b.Gaps))
	for p := range b.Gaps {
		gapKeys = append(gapKeys, p)
	}
	sort.Slice(gapKeys, func(i, j int) bool { return gapKeys[i] < gapKeys[j] })
	for i, p := range gapKeys {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%q:%d", strconv.Itoa(int(p)), b.Gaps[p])
	}
	buf.WriteString("},")

	members := b.Members()

	buf.WriteString(`"mutate":{`)
	for i, n := range members {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%q:{", strconv.FormatUint(uint64(n), 10))
		snp := b.Mutate[n]
		keys := make([]Pos, 0, len(snp))
		for p := range snp {
			keys = append(keys, p)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		for j, p := range keys {
			if j > 0 {
				buf.WriteByte(',')
			}
			fmt.Fprintf(&buf, "%q:%q", strconv.Itoa(int(p)), string(snp[p]))
		}
		buf.WriteByte('}')
	}
	buf.WriteString("},")

	buf.WriteString(`"insert":{`)
	for i, n := range members {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%q:{", strconv.FormatUint(uint64(n), 10))
		ins := b.Insert[n]
		keys := make([]cigar.InsKey, 0, len(ins))
		for k := range ins {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].Pos != keys[j].Pos {
				return keys[i].Pos < keys[j].Pos
			}
			return keys[i].Off < keys[j].Off
		})
		for j, k := range keys {
			if j > 0 {
				buf.WriteByte(',')
			}
			label := fmt.Sprintf("[%d,%d]", k.Pos, k.Off)
			fmt.Fprintf(&buf, "%q:%q", label, string(ins[k]))
		}
		buf.WriteByte('}')
	}
	buf.WriteString("},")

	buf.WriteString(`"delete":{`)
	for i, n := range members {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%q:{", strconv.FormatUint(uint64(n), 10))
		del := b.Delete[n]
		keys := make([]Pos, 0, len(del))
		for p := range del {
			keys = append(keys, p)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		for j, p := range keys {
			if j > 0 {
				buf.WriteByte(',')
			}
			fmt.Fprintf(&buf, "%q:%d", strconv.Itoa(int(p)), del[p])
		}
		buf.WriteByte('}')
	}
	buf.WriteString("}")

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeString(buf *bytes.Buffer, key, val string) {
	encoded, _ := json.Marshal(val)
	fmt.Fprintf(buf, "%q:%s", key, encoded)
}

// wireBlock mirrors the on-disk shape for decoding; standard json.Unmarshal
// key ordering doesn't matter when reading, only when writing.
type wireBlock struct {
	ID     string                       `json:"id"`
	Seq    string                       `json:"seq"`
	Gaps   map[string]int               `json:"gaps"`
	Mutate map[string]map[string]string `json:"mutate"`
	Insert map[string]map[string]string `json:"insert"`
	Delete map[string]map[string]int    `json:"delete"`
}

// UnmarshalJSON decodes the on-disk form of spec.md §6.
func (b *Block) UnmarshalJSON(data []byte) error {
	var w wireBlock
	if err := json.Unmarshal(data, &w); err != nil {
		return errors.Wrap(err, "block.UnmarshalJSON")
	}

	b.ID = w.ID
	b.Consensus = []byte(w.Seq)
	b.Gaps = map[Pos]int{}
	b.Mutate = map[NodeID]cigar.SNPMap{}
	b.Insert = map[NodeID]cigar.InsMap{}
	b.Delete = map[NodeID]cigar.DelMap{}

	for k, v := range w.Gaps {
		p, err := strconv.Atoi(k)
		if err != nil {
			return errors.Wrapf(err, "block.UnmarshalJSON: gap key %q", k)
		}
		b.Gaps[Pos(p)] = v
	}

	for nodeStr, snp := range w.Mutate {
		n, err := parseNodeID(nodeStr)
		if err != nil {
			return err
		}
		m := cigar.SNPMap{}
		for k, v := range snp {
			p, err := strconv.Atoi(k)
			if err != nil {
				return errors.Wrapf(err, "block.UnmarshalJSON: mutate key %q", k)
			}
			if len(v) != 1 {
				return errors.Errorf("block.UnmarshalJSON: mutate value %q is not a single nucleotide", v)
			}
			m[Pos(p)] = v[0]
		}
		b.Mutate[n] = m
	}

	for nodeStr, ins := range w.Insert {
		n, err := parseNodeID(nodeStr)
		if err != nil {
			return err
		}
		m := cigar.InsMap{}
		for k, v := range ins {
			key, err := parseInsKey(k)
			if err != nil {
				return err
			}
			m[key] = []byte(v)
		}
		b.Insert[n] = m
	}

	for nodeStr, del := range w.Delete {
		n, err := parseNodeID(nodeStr)
		if err != nil {
			return err
		}
		m := cigar.DelMap{}
		for k, v := range del {
			p, err := strconv.Atoi(k)
			if err != nil {
				return errors.Wrapf(err, "block.UnmarshalJSON: delete key %q", k)
			}
			m[Pos(p)] = v
		}
		b.Delete[n] = m
	}

	for n := range b.Mutate {
		if _, ok := b.Insert[n]; !ok {
			b.Insert[n] = cigar.InsMap{}
		}
		if _, ok := b.Delete[n]; !ok {
			b.Delete[n] = cigar.DelMap{}
		}
	}

	return nil
}

func parseNodeID(s string) (NodeID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "block.UnmarshalJSON: node id %q", s)
	}
	return NodeID(v), nil
}

// parseInsKey parses the "[pos,off]" insertion key label.
func parseInsKey(s string) (cigar.InsKey, error) {
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return cigar.InsKey{}, errors.Errorf("block.UnmarshalJSON: malformed insert key %q", s)
	}
	pos, err := strconv.Atoi(parts[0])
	if err != nil {
		return cigar.InsKey{}, errors.Wrapf(err, "block.UnmarshalJSON: insert key %q", s)
	}
	off, err := strconv.Atoi(parts[1])
	if err != nil {
		return cigar.InsKey{}, errors.Wrapf(err, "block.UnmarshalJSON: insert key %q", s)
	}
	return cigar.InsKey{Pos: Pos(pos), Off: off}, nil
}
