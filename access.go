package iniconf

import (
	"os"
	"syscall"

	"github.com/pkg/errors"
)

// AccessFlags selects which parts of AccessCheck to enforce (spec.md §6,
// original INI_ACCESS_CHECK_* constants, SPEC_FULL.md §C.2).
type AccessFlags uint32

const (
	AccessCheckMode AccessFlags = 1 << iota
	AccessCheckUID
	AccessCheckGID
)

// AccessCheck is the Access-Check Descriptor of spec.md §3/§6: flags plus
// expected uid, gid, mode, and a mode mask AND-ed with both the file's
// permission bits and Mode before they are compared. A zero Mask widens to
// all permission bits (spec.md §6).
type AccessCheck struct {
	Flags AccessFlags
	UID   uint32
	GID   uint32
	Mode  os.FileMode
	Mask  os.FileMode
}

const allPermissionBits = os.ModePerm

// Check stats path and validates it against the descriptor. It is the
// pluggable collaborator directory augmentation calls per file (spec.md
// §1 "file stat/permission checks" is an external collaborator;
// SPEC_FULL.md §4.4 wires it into augment.go).
func (a AccessCheck) Check(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "iniconf: stat %s", path)
	}

	if a.Flags&AccessCheckMode != 0 {
		mask := a.Mask
		if mask == 0 {
			mask = allPermissionBits
		}
		if info.Mode().Perm()&mask != a.Mode&mask {
			return errors.Wrapf(ErrNotSupported, "iniconf: %s mode %o does not match expected %o (mask %o)", path, info.Mode().Perm(), a.Mode, mask)
		}
	}

	if a.Flags&(AccessCheckUID|AccessCheckGID) != 0 {
		stat, ok := info.Sys().(*syscall.Stat_t)
		if !ok {
			return errors.Wrapf(ErrNotSupported, "iniconf: cannot determine owner of %s on this platform", path)
		}
		if a.Flags&AccessCheckUID != 0 && stat.Uid != a.UID {
			return errors.Wrapf(ErrNotSupported, "iniconf: %s uid %d does not match expected %d", path, stat.Uid, a.UID)
		}
		if a.Flags&AccessCheckGID != 0 && stat.Gid != a.GID {
			return errors.Wrapf(ErrNotSupported, "iniconf: %s gid %d does not match expected %d", path, stat.Gid, a.GID)
		}
	}
	return nil
}
