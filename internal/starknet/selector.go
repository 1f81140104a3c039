package starknet

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// maskFelt250 truncates a keccak digest to the 250 bits a felt can hold.
var maskFelt250 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 250), big.NewInt(1))

// SelectorFromName computes the sn_keccak entrypoint selector: the low 250
// bits of keccak256 over the ASCII name, hex encoded.
func SelectorFromName(name string) string {
	digest := crypto.Keccak256([]byte(name))
	v := new(big.Int).SetBytes(digest)
	return hexutil.EncodeBig(v.And(v, maskFelt250))
}
