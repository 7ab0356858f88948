package blobstream

import "github.com/ethereum/go-ethereum/common"

// canonicalAddresses maps an L1 chain id to the address of its SP1
// Blobstream deployment. Unknown chain ids have no trust anchor and must be
// treated as fatal by the caller (spec.md §4.1 canonical_blobstream_address,
// §1 Non-goals: no discovery outside this table).
var canonicalAddresses = map[uint64]common.Address{
	1:        common.HexToAddress("0x7Cf3876F681Dbb6EdA8f6FfC45D66B996Df08fAe"), // Ethereum mainnet
	42161:    common.HexToAddress("0xA83ca7775Bc2889825BcDeDfFa5b758cf69e8794"), // Arbitrum One
	8453:     common.HexToAddress("0xA83ca7775Bc2889825BcDeDfFa5b758cf69e8794"), // Base
	534352:   common.HexToAddress("0xA83ca7775Bc2889825BcDeDfFa5b758cf69e8794"), // Scroll mainnet
	11155111: common.HexToAddress("0xF0c6429ebAB2e7DC6e05DaFB61128bE21f13cb1e"), // Sepolia
	421614:   common.HexToAddress("0xc3e209eb245Fd59c8586777b499d6A665DF3ABD2"), // Arbitrum Sepolia
	84532:    common.HexToAddress("0xc3e209eb245Fd59c8586777b499d6A665DF3ABD2"), // Base Sepolia
	17000:    common.HexToAddress("0xc3e209eb245Fd59c8586777b499d6A665DF3ABD2"), // Holesky
}

// CanonicalBlobstreamAddress returns the canonical SP1 Blobstream contract
// address for the given L1 chain id, or false if this chain has no
// configured trust anchor.
func CanonicalBlobstreamAddress(chainID uint64) (common.Address, bool) {
	addr, ok := canonicalAddresses[chainID]
	return addr, ok
}
