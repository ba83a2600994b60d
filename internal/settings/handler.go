package settings

import (
	"encoding/json"
	"strings"

	"depo-backend/internal/database"
	"depo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Ayarlar bölüm başına tek opak JSON bloğu olarak saklanır. Şema doğrulaması
// kayıt anındaki zorunlu alan kontrolleriyle sınırlıdır; e-posta/Telegram
// entegrasyonları buradan sadece konfigüre edilir, çağrılmaz.

const (
	SectionLanguage     = "language"
	SectionNotification = "notifications"
	SectionTelegram     = "telegram"
	SectionStockAlerts  = "stock-alerts"
	SectionImportExport = "import-export"
	SectionProfile      = "profile"
)

var knownSections = map[string]bool{
	SectionLanguage:     true,
	SectionNotification: true,
	SectionTelegram:     true,
	SectionStockAlerts:  true,
	SectionImportExport: true,
	SectionProfile:      true,
}

// validateSection: Bölüme göre zorunlu alan kontrolleri.
func validateSection(section string, data map[string]any) error {
	str := func(key string) string {
		v, _ := data[key].(string)
		return strings.TrimSpace(v)
	}
	boolVal := func(key string) bool {
		v, _ := data[key].(bool)
		return v
	}

	switch section {
	case SectionNotification:
		if boolVal("email_enabled") {
			if str("smtp_host") == "" {
				return fiber.NewError(fiber.StatusBadRequest, "E-posta bildirimi açıkken smtp_host zorunlu")
			}
			if _, ok := data["smtp_port"].(float64); !ok {
				return fiber.NewError(fiber.StatusBadRequest, "E-posta bildirimi açıkken smtp_port zorunlu")
			}
			if str("sender") == "" {
				return fiber.NewError(fiber.StatusBadRequest, "E-posta bildirimi açıkken sender zorunlu")
			}
		}
	case SectionTelegram:
		if boolVal("enabled") {
			if str("bot_token") == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Telegram açıkken bot_token zorunlu")
			}
			if str("chat_id") == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Telegram açıkken chat_id zorunlu")
			}
		}
	case SectionStockAlerts:
		if v, ok := data["critical_threshold"].(float64); ok && v < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "critical_threshold negatif olamaz")
		}
	case SectionProfile:
		if str("name") == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name zorunlu")
		}
	}
	return nil
}

// GET /api/settings/:section
func GetSettingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		section := c.Params("section")
		if !knownSections[section] {
			return fiber.NewError(fiber.StatusNotFound, "Bilinmeyen ayar bölümü")
		}

		var setting models.Setting
		if err := database.DB.Where("section = ?", section).First(&setting).Error; err != nil {
			// Henüz kaydedilmemiş bölüm: boş nesne dön
			c.Set("Content-Type", "application/json")
			return c.SendString("{}")
		}

		c.Set("Content-Type", "application/json")
		return c.SendString(setting.Data)
	}
}

// PUT /api/settings/:section
func SaveSettingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		section := c.Params("section")
		if !knownSections[section] {
			return fiber.NewError(fiber.StatusNotFound, "Bilinmeyen ayar bölümü")
		}

		var data map[string]any
		if err := json.Unmarshal(c.Body(), &data); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz JSON gövdesi")
		}

		if err := validateSection(section, data); err != nil {
			return err
		}

		raw, err := json.Marshal(data)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ayar verisi işlenemedi")
		}

		var setting models.Setting
		if err := database.DB.Where("section = ?", section).First(&setting).Error; err != nil {
			setting = models.Setting{Section: section, Data: string(raw)}
			if err := database.DB.Create(&setting).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Ayar kaydedilemedi")
			}
		} else {
			setting.Data = string(raw)
			if err := database.DB.Save(&setting).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Ayar güncellenemedi")
			}
		}

		c.Set("Content-Type", "application/json")
		return c.SendString(setting.Data)
	}
}

// CriticalThreshold: Stok uyarı eşiğini ayarlardan okur; kayıt yoksa
// verilen varsayılan geçerlidir.
func CriticalThreshold(def float64) float64 {
	var setting models.Setting
	if err := database.DB.Where("section = ?", SectionStockAlerts).First(&setting).Error; err != nil {
		return def
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(setting.Data), &data); err != nil {
		return def
	}
	if v, ok := data["critical_threshold"].(float64); ok && v >= 0 {
		return v
	}
	return def
}
