package types

// TxnID is the type of the transaction identifier
type TxnID int32
