package models

import "fmt"

// TransferStatus is the outcome tag of a single transfer
type TransferStatus string

const (
	// StatusCopied indicates the file was copied
	StatusCopied TransferStatus = "copied"
	// StatusMoved indicates the file was moved
	StatusMoved TransferStatus = "moved"
	// StatusFailed indicates the transfer failed; Reason holds the error text
	StatusFailed TransferStatus = "failed"
)

// Direction tells which way a transfer went
type Direction string

const (
	// ToForeign means the transfer wrote into the foreign root
	ToForeign Direction = "=>"
	// ToLocal means the transfer wrote into the local root
	ToLocal Direction = "<="
)

// TransferOutcome records one resolved (source, destination) transfer attempt
type TransferOutcome struct {
	// Name is the display name of the entry
	Name string `json:"name"`
	// Source is the path the file was read or moved from
	Source string `json:"source"`
	// Destination is the path the file was written or moved to
	Destination string `json:"destination"`
	// Operation is what was attempted
	Operation Operation `json:"operation"`
	// Direction is the root written into
	Direction Direction `json:"direction"`
	// Status is the outcome
	Status TransferStatus `json:"status"`
	// Reason is the filesystem error text for failed transfers
	Reason string `json:"reason,omitempty"`
	// Bytes is the number of bytes written by a copy
	Bytes int64 `json:"bytes,omitempty"`
}

// Succeeded creates the outcome of a successful transfer
func Succeeded(op Operation, dir Direction, name, src, dst string) TransferOutcome {
	status := StatusCopied
	if op == OperationMove {
		status = StatusMoved
	}
	return TransferOutcome{
		Name:        name,
		Source:      src,
		Destination: dst,
		Operation:   op,
		Direction:   dir,
		Status:      status,
	}
}

// Failed creates the outcome of a failed transfer
func Failed(op Operation, dir Direction, name, src, dst string, err error) TransferOutcome {
	return TransferOutcome{
		Name:        name,
		Source:      src,
		Destination: dst,
		Operation:   op,
		Direction:   dir,
		Status:      StatusFailed,
		Reason:      err.Error(),
	}
}

// IsFailed reports whether the transfer failed
func (o TransferOutcome) IsFailed() bool {
	return o.Status == StatusFailed
}

func (o TransferOutcome) String() string {
	if o.IsFailed() {
		return fmt.Sprintf("%s %s %s -> %s: %s", o.Name, o.Operation, o.Source, o.Destination, o.Reason)
	}
	return fmt.Sprintf("%s %s %s -> %s", o.Name, o.Status, o.Source, o.Destination)
}
