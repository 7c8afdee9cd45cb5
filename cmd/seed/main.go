package main

import (
	"github.com/shabihhaider/waterbottle-admin/internal/config"
	"github.com/shabihhaider/waterbottle-admin/internal/logger"
	"github.com/shabihhaider/waterbottle-admin/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	log := logger.S()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	// 添加商品
	products := []models.Product{
		{
			SKU:          "WB-19L",
			Name:         "19L 桶装纯净水",
			Unit:         "19L bottle",
			CostPrice:    models.NewMoneyFromDecimal(decimal.NewFromFloat(80)),
			SalePrice:    models.NewMoneyFromDecimal(decimal.NewFromFloat(150)),
			Stock:        200,
			ReorderLevel: 40,
			IsActive:     true,
		},
		{
			SKU:          "WB-19L-MIN",
			Name:         "19L 桶装矿物质水",
			Unit:         "19L bottle",
			CostPrice:    models.NewMoneyFromDecimal(decimal.NewFromFloat(95)),
			SalePrice:    models.NewMoneyFromDecimal(decimal.NewFromFloat(180)),
			Stock:        120,
			ReorderLevel: 30,
			IsActive:     true,
		},
		{
			SKU:          "WB-1500ML-12",
			Name:         "1.5L 瓶装水（12 瓶/箱）",
			Unit:         "carton",
			CostPrice:    models.NewMoneyFromDecimal(decimal.NewFromFloat(240)),
			SalePrice:    models.NewMoneyFromDecimal(decimal.NewFromFloat(420)),
			Stock:        60,
			ReorderLevel: 15,
			IsActive:     true,
		},
		{
			SKU:          "WB-DISPENSER",
			Name:         "台式饮水机",
			Unit:         "unit",
			CostPrice:    models.NewMoneyFromDecimal(decimal.NewFromFloat(1800)),
			SalePrice:    models.NewMoneyFromDecimal(decimal.NewFromFloat(2600)),
			Stock:        8,
			ReorderLevel: 3,
			IsActive:     true,
		},
		{
			SKU:          "WB-PUMP",
			Name:         "手压抽水泵",
			Unit:         "unit",
			CostPrice:    models.NewMoneyFromDecimal(decimal.NewFromFloat(90)),
			SalePrice:    models.NewMoneyFromDecimal(decimal.NewFromFloat(160)),
			Stock:        2,
			ReorderLevel: 10,
			IsActive:     true,
		},
	}

	for _, prod := range products {
		var existing models.Product
		if err := models.DB.Where("sku = ?", prod.SKU).First(&existing).Error; err != nil {
			if err := models.DB.Create(&prod).Error; err != nil {
				log.Warnf("创建商品 %s 失败: %v", prod.SKU, err)
			} else {
				log.Infof("已创建商品: %s", prod.SKU)
			}
		} else {
			existing.Name = prod.Name
			existing.Unit = prod.Unit
			existing.CostPrice = prod.CostPrice
			existing.SalePrice = prod.SalePrice
			existing.ReorderLevel = prod.ReorderLevel
			existing.IsActive = prod.IsActive
			if err := models.DB.Save(&existing).Error; err != nil {
				log.Warnf("更新商品 %s 失败: %v", prod.SKU, err)
			} else {
				log.Infof("已更新商品: %s", prod.SKU)
			}
		}
	}

	// 添加客户
	customers := []models.Customer{
		{
			Name:        "Gulberg Traders",
			Phone:       "0300-1110001",
			Email:       "orders@gulbergtraders.pk",
			Address:     "12-B Main Boulevard, Gulberg III",
			Area:        "Gulberg",
			Status:      "vip",
			CreditLimit: models.NewMoneyFromDecimal(decimal.NewFromFloat(50000)),
		},
		{
			Name:    "Model Town Residence 45",
			Phone:   "0300-1110002",
			Address: "House 45, Block C, Model Town",
			Area:    "Model Town",
			Status:  "active",
		},
		{
			Name:    "DHA Office Tower",
			Phone:   "0300-1110003",
			Email:   "facilities@dhatower.pk",
			Address: "Tower 2, Phase 5, DHA",
			Area:    "DHA",
			Status:  "active",
		},
		{
			Name:    "Johar Town Cafe",
			Phone:   "0300-1110004",
			Address: "Shop 8, Block H, Johar Town",
			Area:    "Johar Town",
			Status:  "inactive",
			Notes:   "暂停营业，待恢复",
		},
	}

	for _, cust := range customers {
		var existing models.Customer
		if err := models.DB.Where("phone = ?", cust.Phone).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cust).Error; err != nil {
				log.Warnf("创建客户 %s 失败: %v", cust.Name, err)
			} else {
				log.Infof("已创建客户: %s", cust.Name)
			}
		} else {
			log.Infof("客户已存在: %s", cust.Name)
		}
	}

	// 添加司机
	drivers := []models.Driver{
		{Name: "Imran Ali", Phone: "0321-2220001", VehicleNo: "LEB-1234", IsActive: true},
		{Name: "Waqas Ahmed", Phone: "0321-2220002", VehicleNo: "LEC-5678", IsActive: true},
		{Name: "Shahid Mehmood", Phone: "0321-2220003", VehicleNo: "LED-9012", IsActive: false},
	}

	for _, drv := range drivers {
		var existing models.Driver
		if err := models.DB.Where("phone = ?", drv.Phone).First(&existing).Error; err != nil {
			if err := models.DB.Create(&drv).Error; err != nil {
				log.Warnf("创建司机 %s 失败: %v", drv.Name, err)
			} else {
				log.Infof("已创建司机: %s", drv.Name)
			}
		} else {
			log.Infof("司机已存在: %s", drv.Name)
		}
	}

	log.Infow("seed_done",
		"products", len(products),
		"customers", len(customers),
		"drivers", len(drivers),
	)
}
