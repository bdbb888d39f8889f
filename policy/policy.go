// Package policy holds the row-level ownership rules: which principal may
// act on which mahasiswa, kantin, menu, pesanan, or detail record. Every
// rule returns nil or utils.ErrForbidden; callers have already authenticated
// the principal and checked its role.
package policy

import (
	"github.com/kudakan/kudakan-api/models"
	"github.com/kudakan/kudakan-api/utils"
	"gorm.io/gorm"
)

// CanManageMahasiswa allows a mahasiswa to update or delete only its own
// account.
func CanManageMahasiswa(p models.Principal, targetID uint) error {
	if p.Role != models.RoleMahasiswa || p.Mahasiswa.ID != targetID {
		return utils.ErrForbidden
	}
	return nil
}

// CanManageKantin allows a kantin to update or delete only its own account.
func CanManageKantin(p models.Principal, targetID uint) error {
	if p.Role != models.RoleKantin || p.Kantin.ID != targetID {
		return utils.ErrForbidden
	}
	return nil
}

// CanManageMenu allows only the owning kantin to create, update, or delete
// a menu record.
func CanManageMenu(p models.Principal, menu *models.Menu) error {
	if p.Role != models.RoleKantin || p.Kantin.ID != menu.IDKantin {
		return utils.ErrForbidden
	}
	return nil
}

// CanCreatePesanan requires the declared id_mahasiswa to be the caller
// itself; a mahasiswa cannot place an order on someone else's behalf.
func CanCreatePesanan(p models.Principal, idMahasiswa uint) error {
	if p.Role != models.RoleMahasiswa || p.Mahasiswa.ID != idMahasiswa {
		return utils.ErrForbidden
	}
	return nil
}

// CanViewPesanan gates fetch-by-id: the mahasiswa who placed the order and
// the kantin it targets may read it, nobody else.
func CanViewPesanan(p models.Principal, pesanan *models.Pesanan) error {
	switch p.Role {
	case models.RoleMahasiswa:
		if p.Mahasiswa.ID == pesanan.IDMahasiswa {
			return nil
		}
	case models.RoleKantin:
		if p.Kantin.ID == pesanan.IDKantin {
			return nil
		}
	}
	return utils.ErrForbidden
}

// CanUpdatePesananStatus restricts status changes to the owning kantin.
// The mahasiswa side expresses intent through create and delete, never by
// writing status.
func CanUpdatePesananStatus(p models.Principal, pesanan *models.Pesanan) error {
	if p.Role != models.RoleKantin || p.Kantin.ID != pesanan.IDKantin {
		return utils.ErrForbidden
	}
	return nil
}

// CanListPesananByMahasiswa gates the per-mahasiswa order list: only that
// mahasiswa may request it.
func CanListPesananByMahasiswa(p models.Principal, mahasiswaID uint) error {
	if p.Role != models.RoleMahasiswa || p.Mahasiswa.ID != mahasiswaID {
		return utils.ErrForbidden
	}
	return nil
}

// CanListPesananByKantin gates the per-kantin order list: only that kantin
// may request it.
func CanListPesananByKantin(p models.Principal, kantinID uint) error {
	if p.Role != models.RoleKantin || p.Kantin.ID != kantinID {
		return utils.ErrForbidden
	}
	return nil
}

// CanDeletePesanan allows the mahasiswa who placed the order to delete it.
func CanDeletePesanan(p models.Principal, pesanan *models.Pesanan) error {
	if p.Role != models.RoleMahasiswa || p.Mahasiswa.ID != pesanan.IDMahasiswa {
		return utils.ErrForbidden
	}
	return nil
}

// CanModifyDetail gates create/update/delete of a line item: only the
// mahasiswa of the parent order.
func CanModifyDetail(p models.Principal, parent *models.Pesanan) error {
	if p.Role != models.RoleMahasiswa || p.Mahasiswa.ID != parent.IDMahasiswa {
		return utils.ErrForbidden
	}
	return nil
}

// ScopePesanan narrows a pesanan query to the rows the principal may see.
// Listing is a filter, not a per-row rejection.
func ScopePesanan(db *gorm.DB, p models.Principal) *gorm.DB {
	if p.Role == models.RoleKantin {
		return db.Where("id_kantin = ?", p.Kantin.ID)
	}
	return db.Where("id_mahasiswa = ?", p.Mahasiswa.ID)
}
