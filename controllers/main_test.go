package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kudakan/kudakan-api/models"
	"github.com/kudakan/kudakan-api/router"
	"github.com/kudakan/kudakan-api/services"
	"github.com/kudakan/kudakan-api/utils"
)

var testTokenMaker = utils.NewTokenMaker("test-secret", 30*time.Minute)

// fakeImageStore keeps uploads in memory so menu image flows run without a
// bucket. It applies the same content-type gate as the real store.
type fakeImageStore struct {
	objects map[string]bool
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{objects: make(map[string]bool)}
}

func (f *fakeImageStore) Upload(_ context.Context, file *multipart.FileHeader) (string, error) {
	contentType := file.Header.Get("Content-Type")
	if !services.AllowedImageType(contentType) {
		return "", utils.NewAppError(utils.KindValidation, "file type %s not allowed", contentType)
	}
	url := "https://storage.test/menu-images/" + file.Filename
	f.objects[url] = true
	return url, nil
}

func (f *fakeImageStore) has(url string) bool {
	return f.objects[url]
}

func (f *fakeImageStore) Delete(_ context.Context, imageURL string) error {
	delete(f.objects, imageURL)
	return nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Mahasiswa{},
		&models.Kantin{},
		&models.Menu{},
		&models.Pesanan{},
		&models.DetailPesanan{},
	)
	require.NoError(t, err)
	return db
}

func setupRouter(db *gorm.DB) *gin.Engine {
	r, _ := setupRouterWithImages(db)
	return r
}

// setupRouterWithImages exposes the image store for tests that assert on
// stored objects.
func setupRouterWithImages(db *gorm.DB) (*gin.Engine, *fakeImageStore) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	images := newFakeImageStore()
	return router.SetupRouter(db, testTokenMaker, images), images
}

func tokenFor(t *testing.T, id uint, role string) string {
	t.Helper()
	token, err := testTokenMaker.Generate(id, role)
	require.NoError(t, err)
	return token
}

// doJSON performs a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, r *gin.Engine, method, url, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(payload)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// doMultipart performs a multipart form request with optional text fields
// and a single file part carrying an explicit content type.
func doMultipart(t *testing.T, r *gin.Engine, method, url, token string, fields map[string]string, fileField, filename, contentType string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileField != "" {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, filename))
		header.Set("Content-Type", contentType)
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func dataOf(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	data, ok := decodeBody(t, w)["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %s", w.Body.String())
	return data
}

// respDecimal reads a money field that may arrive as a JSON string or
// number.
func respDecimal(t *testing.T, v interface{}) decimal.Decimal {
	t.Helper()
	switch val := v.(type) {
	case string:
		d, err := decimal.NewFromString(val)
		require.NoError(t, err)
		return d
	case float64:
		return decimal.NewFromFloat(val)
	}
	t.Fatalf("unexpected decimal representation %T", v)
	return decimal.Zero
}

func str(s string) *string { return &s }

func itoa(i int) string { return strconv.Itoa(i) }

// Seed helpers mirror the common fixture: a mahasiswa and kantin pair with
// complete profiles, plus their counterparts with empty profiles.

func seedMahasiswa(t *testing.T, db *gorm.DB, email string, complete bool) *models.Mahasiswa {
	t.Helper()
	hashed, err := utils.HashPassword("rahasia123")
	require.NoError(t, err)

	m := &models.Mahasiswa{
		Nama:     "Mahasiswa " + email,
		Email:    email,
		Password: hashed,
		NIM:      "210001",
	}
	if complete {
		m.Alamat = str("Jl. Ganesha No. 10")
		m.NoHP = str("081234567890")
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func seedKantin(t *testing.T, db *gorm.DB, email string, complete bool) *models.Kantin {
	t.Helper()
	hashed, err := utils.HashPassword("rahasia123")
	require.NoError(t, err)

	k := &models.Kantin{
		NamaKantin: "Kantin " + email,
		Email:      email,
		Password:   hashed,
	}
	if complete {
		k.NamaPemilik = str("Bu Sari")
		k.NoHPPemilik = str("081298765432")
		k.JamOperasional = str("07:00-17:00")
	}
	require.NoError(t, db.Create(k).Error)
	return k
}

func seedMenu(t *testing.T, db *gorm.DB, kantinID uint, nama, harga string) *models.Menu {
	t.Helper()
	price, err := decimal.NewFromString(harga)
	require.NoError(t, err)

	menu := &models.Menu{IDKantin: kantinID, NamaMenu: nama, Harga: price}
	require.NoError(t, db.Create(menu).Error)
	return menu
}

func seedPesanan(t *testing.T, db *gorm.DB, mahasiswaID, kantinID uint) *models.Pesanan {
	t.Helper()
	pesanan := &models.Pesanan{
		IDMahasiswa: mahasiswaID,
		IDKantin:    kantinID,
		Status:      models.StatusProses,
	}
	require.NoError(t, db.Create(pesanan).Error)
	return pesanan
}

func seedDetail(t *testing.T, db *gorm.DB, pesananID, menuID uint, jumlah int, total string) *models.DetailPesanan {
	t.Helper()
	hargaTotal, err := decimal.NewFromString(total)
	require.NoError(t, err)

	detail := &models.DetailPesanan{
		IDPesanan:  pesananID,
		IDMenu:     menuID,
		Jumlah:     jumlah,
		HargaTotal: hargaTotal,
	}
	require.NoError(t, db.Create(detail).Error)
	return detail
}
