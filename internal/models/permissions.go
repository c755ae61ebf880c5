package models

import (
	"encoding/json"
	"strconv"
)

// Permissions is a Discord permission bit set. The API serializes it as a
// decimal string to avoid precision loss in JSON numbers.
type Permissions uint64

const (
	PermissionViewChannel    Permissions = 1 << 10
	PermissionSendMessages   Permissions = 1 << 11
	PermissionManageMessages Permissions = 1 << 13
	PermissionEmbedLinks     Permissions = 1 << 14
	PermissionAttachFiles    Permissions = 1 << 15
)

func (p Permissions) Has(bits Permissions) bool {
	return p&bits == bits
}

func (p Permissions) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatUint(uint64(p), 10))
}

func (p *Permissions) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}
	*p = Permissions(v)
	return nil
}
