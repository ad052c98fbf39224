package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/lomasson/raito/consensus"
	"github.com/lomasson/raito/crypto"
)

type Request struct {
	Op        string   `json:"op"`
	Version   uint32   `json:"version,omitempty"`
	PrevHash  string   `json:"prev_hash,omitempty"`
	Merkle    string   `json:"merkle_root,omitempty"`
	Time      uint32   `json:"time,omitempty"`
	Bits      uint32   `json:"bits,omitempty"`
	Nonce     uint32   `json:"nonce,omitempty"`
	Hash      string   `json:"hash,omitempty"`
	Txids     []string `json:"txids,omitempty"`
	TargetHex string   `json:"target_hex,omitempty"`
	Height    uint32   `json:"height,omitempty"`
	StateHex  string   `json:"state_hex,omitempty"`
}

type Response struct {
	Ok        bool   `json:"ok"`
	Err       string `json:"err,omitempty"`
	HashHex   string `json:"hash,omitempty"`
	MerkleHex string `json:"merkle_root,omitempty"`
	TargetHex string `json:"target_hex,omitempty"`
	Bits      uint32 `json:"bits,omitempty"`
	WorkHex   string `json:"work_hex,omitempty"`
	Subsidy   uint64 `json:"subsidy,omitempty"`
	StateHex  string `json:"state_hex,omitempty"`
}

func writeResp(w io.Writer, resp Response) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(resp)
}

func errResp(err error) Response {
	if ce, ok := err.(*consensus.ChainError); ok {
		return Response{Ok: false, Err: string(ce.Code)}
	}
	return Response{Ok: false, Err: err.Error()}
}

func handle(req Request) Response {
	p := crypto.StdProvider{}

	switch req.Op {
	case "header_hash":
		prev, err := consensus.DigestFromDisplayHex(req.PrevHash)
		if err != nil {
			return errResp(err)
		}
		merkle, err := consensus.DigestFromDisplayHex(req.Merkle)
		if err != nil {
			return errResp(err)
		}
		h := consensus.Header{
			Version: req.Version,
			Time:    req.Time,
			Bits:    req.Bits,
			Nonce:   req.Nonce,
		}
		hash := consensus.NewDigest(p.DoubleSHA256(consensus.HeaderBytes(&h, prev, merkle)))
		if req.Hash != "" {
			declared, err := consensus.DigestFromDisplayHex(req.Hash)
			if err != nil {
				return errResp(err)
			}
			h.Hash = declared
			if err := consensus.CheckHeaderHash(p, &h, prev, merkle); err != nil {
				return errResp(err)
			}
		}
		return Response{Ok: true, HashHex: hash.String()}

	case "merkle_root":
		leaves := make([][32]byte, 0, len(req.Txids))
		for _, s := range req.Txids {
			d, err := consensus.DigestFromDisplayHex(s)
			if err != nil {
				return errResp(err)
			}
			leaves = append(leaves, d.Bytes())
		}
		root, err := consensus.MerkleRoot(p, leaves)
		if err != nil {
			return errResp(err)
		}
		return Response{Ok: true, MerkleHex: consensus.NewDigest(root).String()}

	case "decode_bits":
		target, err := consensus.BitsToTarget(req.Bits)
		if err != nil {
			return errResp(err)
		}
		work, err := consensus.WorkFromTarget(target)
		if err != nil {
			return errResp(err)
		}
		return Response{
			Ok:        true,
			TargetHex: fmt.Sprintf("%064x", target),
			WorkHex:   fmt.Sprintf("%x", work),
		}

	case "encode_target":
		raw, err := hex.DecodeString(req.TargetHex)
		if err != nil || len(raw) == 0 || len(raw) > 32 {
			return Response{Ok: false, Err: "bad target hex"}
		}
		target := newBig(raw)
		bits, err := consensus.TargetToBits(target)
		if err != nil {
			return errResp(err)
		}
		return Response{Ok: true, Bits: bits}

	case "subsidy":
		return Response{Ok: true, Subsidy: consensus.BlockSubsidy(req.Height)}

	case "state_roundtrip":
		raw, err := hex.DecodeString(req.StateHex)
		if err != nil {
			return Response{Ok: false, Err: "bad state hex"}
		}
		var s consensus.ChainState
		if err := s.UnmarshalBinary(raw); err != nil {
			return errResp(err)
		}
		enc, err := s.MarshalBinary()
		if err != nil {
			return errResp(err)
		}
		return Response{Ok: true, StateHex: hex.EncodeToString(enc)}

	default:
		return Response{Ok: false, Err: fmt.Sprintf("unknown op: %s", req.Op)}
	}
}

func newBig(raw []byte) *big.Int {
	return new(big.Int).SetBytes(raw)
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeResp(os.Stdout, Response{Ok: false, Err: fmt.Sprintf("bad request: %v", err)})
		return
	}
	writeResp(os.Stdout, handle(req))
}
