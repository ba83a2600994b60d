package settings

import "testing"

func TestValidateNotificationSettings(t *testing.T) {
	// E-posta kapalıyken SMTP alanları serbest
	if err := validateSection(SectionNotification, map[string]any{"email_enabled": false}); err != nil {
		t.Fatalf("kapalı e-posta için hata beklenmiyordu: %v", err)
	}

	// Açıkken host/port/sender zorunlu
	if err := validateSection(SectionNotification, map[string]any{"email_enabled": true}); err == nil {
		t.Fatal("smtp_host eksikken hata bekleniyordu")
	}

	ok := map[string]any{
		"email_enabled": true,
		"smtp_host":     "smtp.example.com",
		"smtp_port":     float64(587),
		"sender":        "depo@example.com",
	}
	if err := validateSection(SectionNotification, ok); err != nil {
		t.Fatalf("geçerli SMTP ayarı reddedildi: %v", err)
	}
}

func TestValidateTelegramSettings(t *testing.T) {
	if err := validateSection(SectionTelegram, map[string]any{"enabled": true, "bot_token": "x"}); err == nil {
		t.Fatal("chat_id eksikken hata bekleniyordu")
	}
	if err := validateSection(SectionTelegram, map[string]any{"enabled": false}); err != nil {
		t.Fatalf("kapalı Telegram için hata beklenmiyordu: %v", err)
	}
}

func TestValidateStockAlertSettings(t *testing.T) {
	if err := validateSection(SectionStockAlerts, map[string]any{"critical_threshold": float64(-1)}); err == nil {
		t.Fatal("negatif eşik için hata bekleniyordu")
	}
	if err := validateSection(SectionStockAlerts, map[string]any{"critical_threshold": float64(10)}); err != nil {
		t.Fatalf("geçerli eşik reddedildi: %v", err)
	}
}

func TestValidateProfileSettings(t *testing.T) {
	if err := validateSection(SectionProfile, map[string]any{"name": "  "}); err == nil {
		t.Fatal("boş isim için hata bekleniyordu")
	}
	if err := validateSection(SectionProfile, map[string]any{"name": "Admin User"}); err != nil {
		t.Fatalf("geçerli profil reddedildi: %v", err)
	}
}
