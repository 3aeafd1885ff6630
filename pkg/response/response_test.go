package response

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func TestSuccessEnvelope(t *testing.T) {
	r := Success(http.StatusOK, map[string]string{"key": "value"})
	if r.Status != "success" || r.StatusCode != http.StatusOK || r.Error != "" {
		t.Errorf("unexpected envelope: %+v", r)
	}

	raw, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(raw), `"error"`) {
		t.Errorf("success envelope should omit error field: %s", raw)
	}
}

func TestErrorEnvelope(t *testing.T) {
	r := Error(http.StatusBadRequest, "invalid vat_regime")
	if r.Status != "error" || r.StatusCode != http.StatusBadRequest || r.Error != "invalid vat_regime" {
		t.Errorf("unexpected envelope: %+v", r)
	}

	raw, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(raw), `"data"`) {
		t.Errorf("error envelope should omit data field: %s", raw)
	}
}
