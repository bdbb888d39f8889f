package controllers_test

import (
	"net/http"
	"testing"

	"github.com/kudakan/kudakan-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetMenu(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	k := seedKantin(t, db, "kantin@kampus.ac.id", true)
	token := tokenFor(t, k.ID, models.RoleKantin)

	w := doJSON(t, r, "POST", "/api/v1/menu", token, map[string]interface{}{
		"nama_menu": "Nasi Goreng",
		"harga":     "15000.00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := dataOf(t, w)
	menuID := int(created["id_menu"].(float64))

	// Round trip: the public read returns the same name, price, and image.
	w = doJSON(t, r, "GET", "/api/v1/menu/"+itoa(menuID), "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := dataOf(t, w)
	assert.Equal(t, "Nasi Goreng", got["nama_menu"])
	assert.True(t, respDecimal(t, got["harga"]).Equal(decimal.RequireFromString("15000.00")))
	assert.Nil(t, got["img_menu"])
}

func TestCreateMenuRejectsMahasiswa(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	m := seedMahasiswa(t, db, "budi@student.ac.id", true)

	w := doJSON(t, r, "POST", "/api/v1/menu", tokenFor(t, m.ID, models.RoleMahasiswa), map[string]interface{}{
		"nama_menu": "Nasi Goreng",
		"harga":     "15000.00",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateMenuRejectsNegativePrice(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	k := seedKantin(t, db, "kantin@kampus.ac.id", true)

	w := doJSON(t, r, "POST", "/api/v1/menu", tokenFor(t, k.ID, models.RoleKantin), map[string]interface{}{
		"nama_menu": "Nasi Goreng",
		"harga":     "-1.00",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateMenuOwnershipEnforced(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	owner := seedKantin(t, db, "pemilik@kampus.ac.id", true)
	other := seedKantin(t, db, "lain@kampus.ac.id", true)
	menu := seedMenu(t, db, owner.ID, "Mie Ayam", "12000.00")

	// A different kantin gets Forbidden.
	w := doJSON(t, r, "PUT", "/api/v1/menu/"+itoa(int(menu.ID)), tokenFor(t, other.ID, models.RoleKantin), map[string]interface{}{
		"harga": "13000.00",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The owner succeeds, and the absent img_menu field stays untouched.
	w = doJSON(t, r, "PUT", "/api/v1/menu/"+itoa(int(menu.ID)), tokenFor(t, owner.ID, models.RoleKantin), map[string]interface{}{
		"harga": "13000.00",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := dataOf(t, w)
	assert.Equal(t, "Mie Ayam", got["nama_menu"])
	assert.True(t, respDecimal(t, got["harga"]).Equal(decimal.RequireFromString("13000.00")))
}

func TestDeleteMenuTwice(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	k := seedKantin(t, db, "kantin@kampus.ac.id", true)
	menu := seedMenu(t, db, k.ID, "Es Teh", "5000.00")
	token := tokenFor(t, k.ID, models.RoleKantin)

	w := doJSON(t, r, "DELETE", "/api/v1/menu/"+itoa(int(menu.ID)), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// The second delete finds nothing.
	w = doJSON(t, r, "DELETE", "/api/v1/menu/"+itoa(int(menu.ID)), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateMenuWithImage(t *testing.T) {
	db := setupTestDB(t)
	r, images := setupRouterWithImages(db)
	k := seedKantin(t, db, "kantin@kampus.ac.id", true)
	token := tokenFor(t, k.ID, models.RoleKantin)

	w := doMultipart(t, r, "POST", "/api/v1/menu/with-image", token,
		map[string]string{"nama_menu": "Ayam Geprek", "harga": "18000.00"},
		"image", "geprek.png", "image/png", []byte("png-bytes"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	got := dataOf(t, w)
	url, ok := got["img_menu"].(string)
	require.True(t, ok, "img_menu missing: %s", w.Body.String())
	assert.True(t, images.has(url))

	var menu models.Menu
	require.NoError(t, db.First(&menu, int(got["id_menu"].(float64))).Error)
	require.NotNil(t, menu.ImgMenu)
	assert.Equal(t, url, *menu.ImgMenu)
}

func TestCreateMenuWithImageRejectsType(t *testing.T) {
	db := setupTestDB(t)
	r, images := setupRouterWithImages(db)
	k := seedKantin(t, db, "kantin@kampus.ac.id", true)

	w := doMultipart(t, r, "POST", "/api/v1/menu/with-image", tokenFor(t, k.ID, models.RoleKantin),
		map[string]string{"nama_menu": "Ayam Geprek", "harga": "18000.00"},
		"image", "notes.txt", "text/plain", []byte("not an image"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The rejected upload leaves neither an object nor a row behind.
	assert.Empty(t, images.objects)
	var count int64
	require.NoError(t, db.Model(&models.Menu{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateMenuImageReplacesOld(t *testing.T) {
	db := setupTestDB(t)
	r, images := setupRouterWithImages(db)
	k := seedKantin(t, db, "kantin@kampus.ac.id", true)
	menu := seedMenu(t, db, k.ID, "Bakso", "14000.00")
	token := tokenFor(t, k.ID, models.RoleKantin)
	url := "/api/v1/menu/" + itoa(int(menu.ID)) + "/image"

	w := doMultipart(t, r, "PUT", url, token, nil, "image", "bakso-v1.jpg", "image/jpeg", []byte("v1"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	first := dataOf(t, w)["img_menu"].(string)
	require.True(t, images.has(first))

	w = doMultipart(t, r, "PUT", url, token, nil, "image", "bakso-v2.jpg", "image/jpeg", []byte("v2"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	second := dataOf(t, w)["img_menu"].(string)

	// The replaced object is gone and the row points at the new one.
	assert.False(t, images.has(first))
	assert.True(t, images.has(second))

	var updated models.Menu
	require.NoError(t, db.First(&updated, menu.ID).Error)
	require.NotNil(t, updated.ImgMenu)
	assert.Equal(t, second, *updated.ImgMenu)
}

func TestDeleteMenuImage(t *testing.T) {
	db := setupTestDB(t)
	r, images := setupRouterWithImages(db)
	k := seedKantin(t, db, "kantin@kampus.ac.id", true)
	menu := seedMenu(t, db, k.ID, "Soto", "13000.00")
	token := tokenFor(t, k.ID, models.RoleKantin)
	url := "/api/v1/menu/" + itoa(int(menu.ID)) + "/image"

	w := doMultipart(t, r, "PUT", url, token, nil, "image", "soto.webp", "image/webp", []byte("img"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	stored := dataOf(t, w)["img_menu"].(string)

	w = doJSON(t, r, "DELETE", url, token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.False(t, images.has(stored))

	var cleared models.Menu
	require.NoError(t, db.First(&cleared, menu.ID).Error)
	assert.Nil(t, cleared.ImgMenu)

	// Clearing again finds no image.
	w = doJSON(t, r, "DELETE", url, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateMenuIgnoresImageField(t *testing.T) {
	db := setupTestDB(t)
	r, _ := setupRouterWithImages(db)
	k := seedKantin(t, db, "kantin@kampus.ac.id", true)
	menu := seedMenu(t, db, k.ID, "Gado Gado", "16000.00")
	token := tokenFor(t, k.ID, models.RoleKantin)
	url := "/api/v1/menu/" + itoa(int(menu.ID)) + "/image"

	w := doMultipart(t, r, "PUT", url, token, nil, "image", "gado.jpg", "image/jpeg", []byte("img"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	stored := dataOf(t, w)["img_menu"].(string)

	// img_menu in a JSON update is not a writable field; only the image
	// endpoints touch it.
	w = doJSON(t, r, "PUT", "/api/v1/menu/"+itoa(int(menu.ID)), token, map[string]interface{}{
		"nama_menu": "Gado Gado Spesial",
		"img_menu":  "https://evil.example/ig.png",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.Menu
	require.NoError(t, db.First(&updated, menu.ID).Error)
	assert.Equal(t, "Gado Gado Spesial", updated.NamaMenu)
	require.NotNil(t, updated.ImgMenu)
	assert.Equal(t, stored, *updated.ImgMenu)
}

func TestDeleteMenuRemovesImage(t *testing.T) {
	db := setupTestDB(t)
	r, images := setupRouterWithImages(db)
	k := seedKantin(t, db, "kantin@kampus.ac.id", true)
	menu := seedMenu(t, db, k.ID, "Pecel", "11000.00")
	token := tokenFor(t, k.ID, models.RoleKantin)

	w := doMultipart(t, r, "PUT", "/api/v1/menu/"+itoa(int(menu.ID))+"/image", token,
		nil, "image", "pecel.png", "image/png", []byte("img"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	stored := dataOf(t, w)["img_menu"].(string)

	w = doJSON(t, r, "DELETE", "/api/v1/menu/"+itoa(int(menu.ID)), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Both the row and its object are gone.
	assert.False(t, images.has(stored))
	var count int64
	require.NoError(t, db.Model(&models.Menu{}).Where("id = ?", menu.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetMenuByKantin(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	k := seedKantin(t, db, "kantin@kampus.ac.id", true)
	seedMenu(t, db, k.ID, "Nasi Goreng", "15000.00")
	seedMenu(t, db, k.ID, "Es Teh", "5000.00")

	w := doJSON(t, r, "GET", "/api/v1/menu/kantin/"+itoa(int(k.ID)), "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	list, ok := decodeBody(t, w)["data"].([]interface{})
	require.True(t, ok)
	assert.Len(t, list, 2)

	// Unknown kantin is NotFound, not an empty list.
	w = doJSON(t, r, "GET", "/api/v1/menu/kantin/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
