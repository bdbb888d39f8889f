package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kudakan/kudakan-api/controllers"
	"github.com/kudakan/kudakan-api/middlewares"
	"github.com/kudakan/kudakan-api/services"
	"github.com/kudakan/kudakan-api/utils"
	"gorm.io/gorm"
)

// SetupRouter wires every endpoint. Protected routes always chain
// Authenticate, then a role check where the operation is role-specific, then
// the profile gate on order placing/fulfilment.
func SetupRouter(db *gorm.DB, tm *utils.TokenMaker, images services.ImageStorage) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	authCtrl := controllers.NewAuthController(db, tm)
	mahasiswaCtrl := controllers.NewMahasiswaController(db)
	kantinCtrl := controllers.NewKantinController(db)
	menuCtrl := controllers.NewMenuController(db, images)
	pesananCtrl := controllers.NewPesananController(db)
	detailCtrl := controllers.NewDetailPesananController(db)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Kudakan API is running"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := r.Group("/api/v1")

	// Credential endpoints sit behind the strict limiter.
	public := api.Group("")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/auth/login", authCtrl.Login)
		public.POST("/mahasiswa", mahasiswaCtrl.Register)
		public.POST("/kantin", kantinCtrl.Register)
	}

	// Menu browsing is public.
	api.GET("/menu", menuCtrl.GetAllMenu)
	api.GET("/menu/:menu_id", menuCtrl.GetMenuByID)
	api.GET("/menu/:menu_id/with-kantin", menuCtrl.GetMenuWithKantin)
	api.GET("/menu/kantin/:kantin_id", menuCtrl.GetMenuByKantin)
	api.GET("/menu/search/:query", menuCtrl.SearchMenu)

	authed := api.Group("")
	authed.Use(middlewares.Authenticate(db, tm))
	{
		authed.GET("/auth/me", authCtrl.Me)
		authed.POST("/auth/change-password", authCtrl.ChangePassword)

		authed.GET("/mahasiswa", mahasiswaCtrl.GetAllMahasiswa)
		authed.GET("/mahasiswa/:mahasiswa_id", mahasiswaCtrl.GetMahasiswaByID)
		authed.GET("/mahasiswa/email/:email", mahasiswaCtrl.GetMahasiswaByEmail)
		authed.PUT("/mahasiswa/:mahasiswa_id", middlewares.RequireMahasiswa(), mahasiswaCtrl.UpdateMahasiswa)
		authed.DELETE("/mahasiswa/:mahasiswa_id", middlewares.RequireMahasiswa(), mahasiswaCtrl.DeleteMahasiswa)

		authed.GET("/kantin", kantinCtrl.GetAllKantin)
		authed.GET("/kantin/:kantin_id", kantinCtrl.GetKantinByID)
		authed.GET("/kantin/:kantin_id/with-menus", kantinCtrl.GetKantinWithMenus)
		authed.GET("/kantin/email/:email", kantinCtrl.GetKantinByEmail)
		authed.PUT("/kantin/:kantin_id", middlewares.RequireKantin(), kantinCtrl.UpdateKantin)
		authed.DELETE("/kantin/:kantin_id", middlewares.RequireKantin(), kantinCtrl.DeleteKantin)

		menuWrite := authed.Group("/menu")
		menuWrite.Use(middlewares.RequireKantin())
		{
			menuWrite.POST("", menuCtrl.CreateMenu)
			menuWrite.POST("/with-image", menuCtrl.CreateMenuWithImage)
			menuWrite.PUT("/:menu_id", menuCtrl.UpdateMenu)
			menuWrite.PUT("/:menu_id/image", menuCtrl.UpdateMenuImage)
			menuWrite.DELETE("/:menu_id/image", menuCtrl.DeleteMenuImage)
			menuWrite.DELETE("/:menu_id", menuCtrl.DeleteMenu)
		}

		authed.POST("/pesanan", middlewares.RequireMahasiswa(), middlewares.RequireCompleteProfile(), pesananCtrl.CreatePesanan)
		authed.GET("/pesanan", pesananCtrl.GetAllPesanan)
		authed.GET("/pesanan/:pesanan_id", pesananCtrl.GetPesananByID)
		authed.GET("/pesanan/:pesanan_id/with-details", pesananCtrl.GetPesananWithDetails)
		authed.GET("/pesanan/status/:status", pesananCtrl.GetPesananByStatus)
		authed.GET("/pesanan/mahasiswa/:mahasiswa_id", middlewares.RequireMahasiswa(), pesananCtrl.GetPesananByMahasiswa)
		authed.GET("/pesanan/kantin/:kantin_id", middlewares.RequireKantin(), pesananCtrl.GetPesananByKantin)
		authed.PUT("/pesanan/:pesanan_id", middlewares.RequireKantin(), middlewares.RequireCompleteProfile(), pesananCtrl.UpdatePesananStatus)
		authed.DELETE("/pesanan/:pesanan_id", middlewares.RequireMahasiswa(), pesananCtrl.DeletePesanan)

		authed.GET("/pesanan/:pesanan_id/details", detailCtrl.GetDetailsByPesanan)
		authed.GET("/pesanan/:pesanan_id/total", detailCtrl.GetPesananTotal)

		authed.POST("/detail-pesanan", middlewares.RequireMahasiswa(), middlewares.RequireCompleteProfile(), detailCtrl.CreateDetail)
		authed.POST("/detail-pesanan/auto-calculate", middlewares.RequireMahasiswa(), middlewares.RequireCompleteProfile(), detailCtrl.CreateDetailAutoCalculate)
		authed.GET("/detail-pesanan/:detail_id", detailCtrl.GetDetailByID)
		authed.PUT("/detail-pesanan/:detail_id", middlewares.RequireMahasiswa(), detailCtrl.UpdateDetail)
		authed.DELETE("/detail-pesanan/:detail_id", middlewares.RequireMahasiswa(), detailCtrl.DeleteDetail)
	}

	return r
}
