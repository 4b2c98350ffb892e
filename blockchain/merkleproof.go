// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/btpc-network/btpc/chaincfg/chainhash"
)

var ErrInvalidMerkleIndex = errors.New("blockchain: merkle proof index out of range")

// MerkleProofStep is one level of a MerkleProof: the sibling hash
// encountered at that level, and whether the current node was the left
// child (true) or right child (false) of the pairing.
type MerkleProofStep struct {
	Sibling chainhash.Hash
	WasLeft bool
}

// MerkleProof is an inclusion proof for one transaction within a
// merkle tree, per §4.5.
type MerkleProof struct {
	Root  chainhash.Hash
	TxID  chainhash.Hash
	Steps []MerkleProofStep
}

// GenerateMerkleProof builds the inclusion proof for txids[index].
func GenerateMerkleProof(txids []chainhash.Hash, index int) (*MerkleProof, error) {
	if index < 0 || index >= len(txids) {
		return nil, ErrInvalidMerkleIndex
	}

	root, err := CalcMerkleRoot(txids)
	if err != nil {
		return nil, err
	}

	proof := &MerkleProof{Root: root, TxID: txids[index]}

	if len(txids) == 1 {
		return proof, nil
	}

	level := make([]chainhash.Hash, len(txids))
	copy(level, txids)
	pos := index

	for len(level) > 1 {
		if len(level)%2 != 0 {
			level = append(level, level[len(level)-1])
		}

		var sibling chainhash.Hash
		wasLeft := pos%2 == 0
		if wasLeft {
			sibling = level[pos+1]
		} else {
			sibling = level[pos-1]
		}
		proof.Steps = append(proof.Steps, MerkleProofStep{Sibling: sibling, WasLeft: wasLeft})

		next := make([]chainhash.Hash, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			next[i/2] = hashMerkleBranches(level[i], level[i+1])
		}
		level = next
		pos /= 2
	}

	return proof, nil
}

// Verify replays the recorded pairings and reports whether they
// reconstruct the proof's stored root.
func (p *MerkleProof) Verify() bool {
	current := p.TxID
	if len(p.Steps) == 0 {
		return chainhash.DoubleHashH(current[:]) == p.Root
	}

	for _, step := range p.Steps {
		if step.WasLeft {
			current = hashMerkleBranches(current, step.Sibling)
		} else {
			current = hashMerkleBranches(step.Sibling, current)
		}
	}
	return current == p.Root
}

// Serialize writes the proof's canonical encoding: root(64) || txid(64)
// || count(4 LE) || {hash(64) || direction(1)} * count.
func (p *MerkleProof) Serialize(w io.Writer) error {
	if _, err := w.Write(p.Root[:]); err != nil {
		return err
	}
	if _, err := w.Write(p.TxID[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(p.Steps))); err != nil {
		return err
	}
	for _, step := range p.Steps {
		if _, err := w.Write(step.Sibling[:]); err != nil {
			return err
		}
		direction := byte(0)
		if step.WasLeft {
			direction = 1
		}
		if _, err := w.Write([]byte{direction}); err != nil {
			return err
		}
	}
	return nil
}

// Bytes returns the proof's canonical serialization.
func (p *MerkleProof) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Serialize(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DeserializeMerkleProof parses a proof from its canonical encoding.
func DeserializeMerkleProof(r io.Reader) (*MerkleProof, error) {
	p := new(MerkleProof)
	if _, err := io.ReadFull(r, p.Root[:]); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(r, p.TxID[:]); err != nil {
		return nil, err
	}
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	p.Steps = make([]MerkleProofStep, count)
	for i := range p.Steps {
		if _, err := io.ReadFull(r, p.Steps[i].Sibling[:]); err != nil {
			return nil, err
		}
		var direction [1]byte
		if _, err := io.ReadFull(r, direction[:]); err != nil {
			return nil, err
		}
		p.Steps[i].WasLeft = direction[0] == 1
	}
	return p, nil
}
