package database

import (
	"fmt"

	"github.com/OTISDav/vehiculesplatform/internal/core/logger"
	catalogdomain "github.com/OTISDav/vehiculesplatform/internal/features/catalog/domain"
	tariffdomain "github.com/OTISDav/vehiculesplatform/internal/features/tariffs/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Seed loads the tariff reference data on first boot. Zones and transporters
// are real operating data, so they are seeded whenever the zone table is
// empty; demo vehicles only when asked for.
func Seed(db *gorm.DB, demoVehicles bool) error {
	var count int64
	if err := db.Model(&tariffdomain.Zone{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to inspect zone table: %w", err)
	}

	if count == 0 {
		if err := seedTariffs(db); err != nil {
			return err
		}
		logger.Get().Info("Tariff reference data seeded",
			zap.Int("zones", len(seedZones())),
		)
	}

	if demoVehicles {
		if err := seedDemoVehicles(db); err != nil {
			return err
		}
	}
	return nil
}

func seedZones() []tariffdomain.Zone {
	return []tariffdomain.Zone{
		{
			Name:         "Europe Occidentale",
			Countries:    "France\nAllemagne\nBelgique\nPays-Bas\nLuxembourg\nSuisse\nAutriche\nItalie\nEspagne\nPortugal",
			BasePrice:    decimal.NewFromInt(2_500_000),
			PricePerKg:   decimal.NewFromInt(500),
			DelayDaysMin: 25, DelayDaysMax: 35,
			IsActive: true,
			Notes:    "Port d'embarquement : Marseille ou Le Havre.",
		},
		{
			Name:         "Europe du Nord",
			Countries:    "Suède\nNorvège\nDanemark\nFinlande",
			BasePrice:    decimal.NewFromInt(2_800_000),
			PricePerKg:   decimal.NewFromInt(550),
			DelayDaysMin: 30, DelayDaysMax: 40,
			IsActive: true,
			Notes:    "Port : Rotterdam ou Hambourg.",
		},
		{
			Name:         "Europe de l'Est",
			Countries:    "Pologne\nRépublique Tchèque\nHongrie\nRoumanie\nBulgarie\nUkraine",
			BasePrice:    decimal.NewFromInt(3_000_000),
			PricePerKg:   decimal.NewFromInt(600),
			DelayDaysMin: 35, DelayDaysMax: 45,
			IsActive: true,
			Notes:    "Transit via Hambourg ou Gdansk.",
		},
		{
			Name:         "Royaume-Uni",
			Countries:    "Royaume-Uni\nAngleterre\nÉcosse\nGalles\nIrlande du Nord",
			BasePrice:    decimal.NewFromInt(2_700_000),
			PricePerKg:   decimal.NewFromInt(520),
			DelayDaysMin: 28, DelayDaysMax: 38,
			IsActive: true,
			Notes:    "Embarquement : Southampton ou Tilbury.",
		},
		{
			Name:         "Amérique du Nord",
			Countries:    "États-Unis\nCanada",
			BasePrice:    decimal.NewFromInt(4_500_000),
			PricePerKg:   decimal.NewFromInt(800),
			DelayDaysMin: 40, DelayDaysMax: 55,
			IsActive: true,
			Notes:    "Ports : New York, Baltimore ou Houston.",
		},
		{
			Name:         "Asie de l'Est",
			Countries:    "Chine\nJapon\nCorée du Sud\nTaïwan",
			BasePrice:    decimal.NewFromInt(4_000_000),
			PricePerKg:   decimal.NewFromInt(750),
			DelayDaysMin: 35, DelayDaysMax: 50,
			IsActive: true,
			Notes:    "Ports : Shanghai, Tokyo, Busan.",
		},
		{
			Name:         "Moyen-Orient",
			Countries:    "Émirats Arabes Unis\nArabie Saoudite\nQatar\nKoweït\nBahreïn\nOman",
			BasePrice:    decimal.NewFromInt(3_500_000),
			PricePerKg:   decimal.NewFromInt(650),
			DelayDaysMin: 20, DelayDaysMax: 30,
			IsActive: true,
			Notes:    "Port de Dubaï (Jebel Ali).",
		},
	}
}

func seedTariffs(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		zones := seedZones()
		if err := tx.Create(&zones).Error; err != nil {
			return fmt.Errorf("failed to seed zones: %w", err)
		}

		byName := make(map[string]tariffdomain.Zone, len(zones))
		for _, z := range zones {
			byName[z.Name] = z
		}
		pick := func(names ...string) []tariffdomain.Zone {
			out := make([]tariffdomain.Zone, 0, len(names))
			for _, n := range names {
				if z, ok := byName[n]; ok {
					out = append(out, z)
				}
			}
			return out
		}

		transporters := []tariffdomain.Transporter{
			{
				Name: "AfriLOG Shipping", ContactName: "Jean-Marc Dupont",
				Phone: "+33612345678", Email: "contact@afrilog.fr",
				IsActive: true,
				Notes:    "Partenaire principal Europe Occidentale.",
				Zones:    pick("Europe Occidentale", "Europe du Nord", "Royaume-Uni"),
			},
			{
				Name: "TransGlobal Lomé", ContactName: "Kofi Agbeko",
				Phone: "+22890111222", Email: "kofi@transglobal.tg",
				IsActive: true,
				Notes:    "Basé à Lomé, gère l'arrivée au port.",
				Zones:    pick("Europe Occidentale", "Europe de l'Est", "Moyen-Orient"),
			},
			{
				Name: "OceanRoute USA", ContactName: "Mike Johnson",
				Phone: "+13015551234", Email: "mike@oceanroute.us",
				IsActive: true,
				Notes:    "Spécialisé Amérique du Nord → Afrique.",
				Zones:    pick("Amérique du Nord"),
			},
			{
				Name: "AsiaCargo Express", ContactName: "Li Wei",
				Phone: "+8613812345678", Email: "liwei@asiacargo.cn",
				IsActive: true,
				Notes:    "Spécialisé Asie → Afrique.",
				Zones:    pick("Asie de l'Est"),
			},
		}
		if err := tx.Create(&transporters).Error; err != nil {
			return fmt.Errorf("failed to seed transporters: %w", err)
		}
		return nil
	})
}

func seedDemoVehicles(db *gorm.DB) error {
	var count int64
	if err := db.Model(&catalogdomain.Vehicle{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to inspect vehicle table: %w", err)
	}
	if count > 0 {
		return nil
	}

	vehicles := []catalogdomain.Vehicle{
		{
			Title: "Toyota Corolla 2020 — Location",
			Brand: "Toyota", Model: "Corolla", Year: 2020,
			Origin: catalogdomain.OriginLocal,
			Status: catalogdomain.VehicleStatusAvailable,
			City:   "Lomé", Country: "Togo",
		},
		{
			Title: "Toyota Land Cruiser 2021",
			Brand: "Toyota", Model: "Land Cruiser", Year: 2021,
			Origin: catalogdomain.OriginInternational,
			Status: catalogdomain.VehicleStatusAvailable,
			City:   "Paris", Country: "France",
		},
		{
			Title: "Honda Civic 2019",
			Brand: "Honda", Model: "Civic", Year: 2019,
			Origin: catalogdomain.OriginInternational,
			Status: catalogdomain.VehicleStatusAvailable,
			City:   "Frankfurt", Country: "Allemagne",
		},
		{
			Title: "Ford F-150 2022",
			Brand: "Ford", Model: "F-150", Year: 2022,
			Origin: catalogdomain.OriginInternational,
			Status: catalogdomain.VehicleStatusReserved,
			City:   "Houston", Country: "États-Unis",
		},
	}
	if err := db.Create(&vehicles).Error; err != nil {
		return fmt.Errorf("failed to seed demo vehicles: %w", err)
	}

	logger.Get().Info("Demo vehicles seeded", zap.Int("vehicles", len(vehicles)))
	return nil
}
