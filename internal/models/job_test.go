package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseMBTITypes(t *testing.T) {
	got := ParseMBTITypes(" intj, ENTP,,intj ,estj")
	want := []string{"INTJ", "ENTP", "ESTJ"}
	if len(got) != len(want) {
		t.Fatalf("ParseMBTITypes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ParseMBTITypes()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if len(ParseMBTITypes("")) != 0 {
		t.Error("empty input should give no types")
	}
}

func TestJobPosting_JSON(t *testing.T) {
	j := JobPosting{
		ID:        "job-1",
		Title:     "Quran Teacher",
		MBTITypes: ParseMBTITypes("INFJ,ENFJ"),
		Status:    JobStatusActive,
		Deadline:  time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	b, err := json.Marshal(j)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if raw["mbtiTypes"] != "INFJ,ENFJ" {
		t.Errorf("mbtiTypes = %v, want comma list", raw["mbtiTypes"])
	}

	var back JobPosting
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal() into JobPosting error = %v", err)
	}
	if len(back.MBTITypes) != 2 || back.MBTITypes[1] != "ENFJ" || back.Title != j.Title {
		t.Errorf("round trip = %+v", back)
	}

	j.MBTITypes = nil
	b, _ = json.Marshal(j)
	raw = nil
	_ = json.Unmarshal(b, &raw)
	if v, ok := raw["mbtiTypes"]; !ok || v != nil {
		t.Errorf("empty mbtiTypes should marshal as null, got %v", v)
	}
}

func TestJobPosting_OpenAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		status   JobStatus
		deadline time.Time
		want     bool
	}{
		{"active future", JobStatusActive, now.Add(time.Hour), true},
		{"open future", JobStatusOpen, now.Add(time.Hour), true},
		{"deadline equals now", JobStatusActive, now, true},
		{"expired", JobStatusActive, now.Add(-time.Second), false},
		{"closed", JobStatusClosed, now.Add(time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := &JobPosting{Status: tt.status, Deadline: tt.deadline}
			if got := j.OpenAt(now); got != tt.want {
				t.Errorf("OpenAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProfile_MissingDocuments(t *testing.T) {
	url := "https://example.com/f.pdf"
	empty := ""
	tests := []struct {
		name string
		p    Profile
		want []string
	}{
		{"none", Profile{}, []string{DocumentResume, DocumentCertificate}},
		{"empty strings count as missing", Profile{ResumeURL: &empty, CertificateURL: &empty}, []string{DocumentResume, DocumentCertificate}},
		{"resume only", Profile{ResumeURL: &url}, []string{DocumentCertificate}},
		{"certificate only", Profile{CertificateURL: &url}, []string{DocumentResume}},
		{"both", Profile{ResumeURL: &url, CertificateURL: &url}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.p.MissingDocuments()
			if len(got) != len(tt.want) {
				t.Fatalf("MissingDocuments() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("MissingDocuments()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
