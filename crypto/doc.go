/*
Package crypto provides the secp256k1 signature handling used to authorize
vault withdrawals.

Owners sign a 32 byte digest off-chain. The vault never sees public keys,
only signatures, and identifies signers by the address recovered from each
signature. A Recoverer does that recovery. Signatures are 65 bytes, R || S || V,
where V is either the raw recovery id (0 or 1), the Ethereum convention
(27 or 28) or an EIP-155 chain encoded value (35 and above).
*/
package crypto
