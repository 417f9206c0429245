package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		Port:            "8080",
		BaseUrl:         "https://deadlines.example.com",
		PublicDir:       "./public",
		UploadDir:       "./uploads",
		DBPath:          "./test.db",
		RulesFile:       "./rules.yml",
		CredentialsFile: "./credentials.json",
		TokenFile:       "./token.json",
		CalendarID:      "primary",
		OpenAIKey:       "test-key",
		OpenAIModel:     "gpt-4o",
		OCRLanguage:     "eng",
		APIAccessKey:    "api-key",
		Debug:           true,
		Version:         "test-version",
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.CalendarID != "primary" {
		t.Errorf("Expected calendar 'primary', got '%s'", cfg.CalendarID)
	}
	if cfg.OpenAIModel != "gpt-4o" {
		t.Errorf("Expected model 'gpt-4o', got '%s'", cfg.OpenAIModel)
	}
	if cfg.OCRLanguage != "eng" {
		t.Errorf("Expected OCR language 'eng', got '%s'", cfg.OCRLanguage)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
}

func TestGetPanicsWithoutLoad(t *testing.T) {
	Set(nil)
	defer func() {
		if r := recover(); r == nil {
			t.Error("Get should panic before Load")
		}
	}()
	Get()
}

func TestSetAndGet(t *testing.T) {
	Set(&Cfg{Port: "9090"})
	defer Set(nil)

	if Get().Port != "9090" {
		t.Errorf("Expected port '9090', got '%s'", Get().Port)
	}
}
