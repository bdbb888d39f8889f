package policy

import (
	"testing"

	"github.com/kudakan/kudakan-api/models"
	"github.com/stretchr/testify/assert"
)

func mahasiswaPrincipal(id uint) models.Principal {
	return models.Principal{
		Role:      models.RoleMahasiswa,
		Mahasiswa: &models.Mahasiswa{ID: id},
	}
}

func kantinPrincipal(id uint) models.Principal {
	return models.Principal{
		Role:   models.RoleKantin,
		Kantin: &models.Kantin{ID: id},
	}
}

func TestCanManageMahasiswa(t *testing.T) {
	assert.NoError(t, CanManageMahasiswa(mahasiswaPrincipal(1), 1))
	assert.Error(t, CanManageMahasiswa(mahasiswaPrincipal(1), 2))
	assert.Error(t, CanManageMahasiswa(kantinPrincipal(1), 1))
}

func TestCanManageMenu(t *testing.T) {
	menu := &models.Menu{ID: 10, IDKantin: 3}

	assert.NoError(t, CanManageMenu(kantinPrincipal(3), menu))
	assert.Error(t, CanManageMenu(kantinPrincipal(4), menu))
	assert.Error(t, CanManageMenu(mahasiswaPrincipal(3), menu))
}

func TestCanViewPesanan(t *testing.T) {
	pesanan := &models.Pesanan{ID: 5, IDMahasiswa: 1, IDKantin: 2}

	assert.NoError(t, CanViewPesanan(mahasiswaPrincipal(1), pesanan))
	assert.NoError(t, CanViewPesanan(kantinPrincipal(2), pesanan))
	assert.Error(t, CanViewPesanan(mahasiswaPrincipal(9), pesanan))
	assert.Error(t, CanViewPesanan(kantinPrincipal(9), pesanan))
}

func TestCanUpdatePesananStatus(t *testing.T) {
	pesanan := &models.Pesanan{ID: 5, IDMahasiswa: 1, IDKantin: 2}

	// Only the owning kantin; the mahasiswa who placed the order cannot.
	assert.NoError(t, CanUpdatePesananStatus(kantinPrincipal(2), pesanan))
	assert.Error(t, CanUpdatePesananStatus(kantinPrincipal(3), pesanan))
	assert.Error(t, CanUpdatePesananStatus(mahasiswaPrincipal(1), pesanan))
}

func TestCanModifyDetail(t *testing.T) {
	pesanan := &models.Pesanan{ID: 5, IDMahasiswa: 1, IDKantin: 2}

	assert.NoError(t, CanModifyDetail(mahasiswaPrincipal(1), pesanan))
	assert.Error(t, CanModifyDetail(mahasiswaPrincipal(2), pesanan))
	// The receiving kantin may read line items but not modify them.
	assert.Error(t, CanModifyDetail(kantinPrincipal(2), pesanan))
}

func TestCanListPesananByPrincipal(t *testing.T) {
	assert.NoError(t, CanListPesananByMahasiswa(mahasiswaPrincipal(1), 1))
	assert.Error(t, CanListPesananByMahasiswa(mahasiswaPrincipal(1), 2))
	assert.Error(t, CanListPesananByMahasiswa(kantinPrincipal(1), 1))

	assert.NoError(t, CanListPesananByKantin(kantinPrincipal(3), 3))
	assert.Error(t, CanListPesananByKantin(kantinPrincipal(3), 4))
	assert.Error(t, CanListPesananByKantin(mahasiswaPrincipal(3), 3))
}

func TestCanCreatePesanan(t *testing.T) {
	assert.NoError(t, CanCreatePesanan(mahasiswaPrincipal(1), 1))
	assert.Error(t, CanCreatePesanan(mahasiswaPrincipal(1), 2))
	assert.Error(t, CanCreatePesanan(kantinPrincipal(1), 1))
}
