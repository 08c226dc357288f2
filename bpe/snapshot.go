package bpe

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Interactions-AI/vecxx/vocab"
	"github.com/edsrzf/mmap-go"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// snapshotMagic identifies a compiled BPEVocab snapshot, distinguishing it
// from a plain-text vocab or codes file at the first 4 bytes.
var snapshotMagic = [4]byte{'V', 'X', 'S', '1'}

const (
	fieldPiece = protowire.Number(1)
	fieldLeft  = protowire.Number(2)
	fieldRight = protowire.Number(3)
)

// pathHasSnapshotSignature reports whether the file at path begins with the
// compiled-snapshot magic signature. A missing file is not an error here;
// the caller's subsequent load attempt reports that failure.
func pathHasSnapshotSignature(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	var header [4]byte
	n, err := f.Read(header[:])
	if err != nil && n == 0 {
		return false, nil
	}
	return header == snapshotMagic, nil
}

// writeSnapshot serializes v's non-reserved pieces and m's merge rules (in
// rank order) into a single file at path: a 4-byte magic signature, a
// 16-byte UUID build stamp, then a protowire-framed body. The write is
// guarded by an advisory file lock and performed atomically via a temp file
// plus rename, so a reader never observes a partially written snapshot.
func writeSnapshot(path string, v *vocab.Vocab, m *MergeTable) error {
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("vecxx: locking snapshot write at %q: %w", path, err)
	}
	defer lock.Unlock()

	var body []byte
	for _, p := range v.Pieces() {
		body = protowire.AppendTag(body, fieldPiece, protowire.BytesType)
		body = protowire.AppendString(body, p)
	}
	for _, r := range m.Rules() {
		body = protowire.AppendTag(body, fieldLeft, protowire.BytesType)
		body = protowire.AppendString(body, r.Left)
		body = protowire.AppendTag(body, fieldRight, protowire.BytesType)
		body = protowire.AppendString(body, r.Right)
	}

	stamp := uuid.New()
	out := make([]byte, 0, 4+16+len(body))
	out = append(out, snapshotMagic[:]...)
	stampBytes, err := stamp.MarshalBinary()
	if err != nil {
		return fmt.Errorf("vecxx: stamping snapshot: %w", err)
	}
	out = append(out, stampBytes...)
	out = append(out, body...)

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".vecxx-snapshot-*.tmp")
	if err != nil {
		return fmt.Errorf("vecxx: creating snapshot temp file in %q: %w", dir, err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("vecxx: writing snapshot body: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("vecxx: closing snapshot temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("vecxx: renaming snapshot into place at %q: %w", path, err)
	}
	return nil
}

// newFromSnapshot memory-maps path and decodes it into a BPEVocab, skipping
// the full os.ReadFile a plain-text load would otherwise require.
func newFromSnapshot(path string, cfg *bpevocabConfig) (*BPEVocab, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrResourceOpen, "opening snapshot %q: %v", path, err)
	}
	defer f.Close()

	mapped, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, errors.Wrapf(ErrResourceOpen, "mapping snapshot %q: %v", path, err)
	}
	defer mapped.Unmap()

	const headerLen = 4 + 16
	if len(mapped) < headerLen {
		return nil, errors.Wrapf(ErrResourceOpen, "snapshot %q is truncated", path)
	}
	body := mapped[headerLen:]

	var pieces []string
	var lefts, rights []string
	for len(body) > 0 {
		num, typ, n := protowire.ConsumeTag(body)
		if n < 0 {
			return nil, errors.Wrapf(ErrResourceOpen, "snapshot %q has a malformed field tag", path)
		}
		body = body[n:]
		if typ != protowire.BytesType {
			return nil, errors.Wrapf(ErrResourceOpen, "snapshot %q has an unexpected wire type", path)
		}
		val, n := protowire.ConsumeString(body)
		if n < 0 {
			return nil, errors.Wrapf(ErrResourceOpen, "snapshot %q has a malformed string field", path)
		}
		body = body[n:]
		switch num {
		case fieldPiece:
			pieces = append(pieces, val)
		case fieldLeft:
			lefts = append(lefts, val)
		case fieldRight:
			rights = append(rights, val)
		}
	}
	if len(lefts) != len(rights) {
		return nil, errors.Wrapf(ErrResourceOpen, "snapshot %q has mismatched merge rule fields", path)
	}

	rules := make([]MergeRule, len(lefts))
	for i := range lefts {
		rules[i] = MergeRule{Left: lefts[i], Right: rights[i], Rank: i}
	}

	v := vocab.New(pieces)
	m := NewMergeTableFromRules(rules)
	return newBPEVocab(v, m, cfg), nil
}
