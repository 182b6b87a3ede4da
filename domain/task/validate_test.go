package task

import (
	"strings"
	"testing"
)

func strPtr(s string) *string {
	return &s
}

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		wantTitle string
		wantKind  ViolationKind
	}{
		{
			name:      "valid title",
			title:     "Buy milk",
			wantTitle: "Buy milk",
		},
		{
			name:      "title is trimmed",
			title:     "  Buy milk  ",
			wantTitle: "Buy milk",
		},
		{
			name:     "empty title",
			title:    "",
			wantKind: ViolationEmptyTitle,
		},
		{
			name:     "whitespace-only title",
			title:    "   \t ",
			wantKind: ViolationEmptyTitle,
		},
		{
			name:      "title at limit",
			title:     strings.Repeat("a", 200),
			wantTitle: strings.Repeat("a", 200),
		},
		{
			name:     "title over limit",
			title:    strings.Repeat("a", 201),
			wantKind: ViolationTitleTooLong,
		},
		{
			name:      "multibyte title counted in code points",
			title:     strings.Repeat("世", 200),
			wantTitle: strings.Repeat("世", 200),
		},
		{
			name:     "multibyte title over limit",
			title:    strings.Repeat("世", 201),
			wantKind: ViolationTitleTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, verr := Validate(Raw{
				Title:    tt.title,
				Status:   string(StatusPending),
				Priority: string(PriorityMedium),
			})

			if tt.wantKind != "" {
				if verr == nil {
					t.Fatalf("Expected violation %s, got none", tt.wantKind)
				}
				v := verr.First()
				if v.Field != "title" {
					t.Errorf("Expected field title, got %s", v.Field)
				}
				if v.Kind != tt.wantKind {
					t.Errorf("Expected kind %s, got %s", tt.wantKind, v.Kind)
				}
				return
			}

			if verr != nil {
				t.Fatalf("Unexpected violations: %v", verr)
			}
			if fields.Title != tt.wantTitle {
				t.Errorf("Expected title %q, got %q", tt.wantTitle, fields.Title)
			}
		})
	}
}

func TestValidateDescription(t *testing.T) {
	tests := []struct {
		name        string
		description *string
		want        *string
		wantKind    ViolationKind
	}{
		{
			name:        "nil description stays nil",
			description: nil,
			want:        nil,
		},
		{
			name:        "empty description becomes nil",
			description: strPtr(""),
			want:        nil,
		},
		{
			name:        "whitespace-only description becomes nil",
			description: strPtr("   "),
			want:        nil,
		},
		{
			name:        "description is trimmed",
			description: strPtr("  details  "),
			want:        strPtr("details"),
		},
		{
			name:        "description at limit",
			description: strPtr(strings.Repeat("b", 1000)),
			want:        strPtr(strings.Repeat("b", 1000)),
		},
		{
			name:        "description over limit",
			description: strPtr(strings.Repeat("b", 1001)),
			wantKind:    ViolationDescriptionTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, verr := Validate(Raw{
				Title:       "Task",
				Description: tt.description,
				Status:      string(StatusPending),
				Priority:    string(PriorityMedium),
			})

			if tt.wantKind != "" {
				if verr == nil {
					t.Fatalf("Expected violation %s, got none", tt.wantKind)
				}
				v := verr.First()
				if v.Field != "description" || v.Kind != tt.wantKind {
					t.Errorf("Expected description/%s, got %s/%s", tt.wantKind, v.Field, v.Kind)
				}
				return
			}

			if verr != nil {
				t.Fatalf("Unexpected violations: %v", verr)
			}
			if tt.want == nil {
				if fields.Description != nil {
					t.Errorf("Expected nil description, got %q", *fields.Description)
				}
				return
			}
			if fields.Description == nil || *fields.Description != *tt.want {
				t.Errorf("Expected description %q, got %v", *tt.want, fields.Description)
			}
		})
	}
}

func TestValidateEnums(t *testing.T) {
	tests := []struct {
		name      string
		status    string
		priority  string
		wantField string
		wantKind  ViolationKind
	}{
		{name: "pending low", status: "pending", priority: "low"},
		{name: "in_progress medium", status: "in_progress", priority: "medium"},
		{name: "completed high", status: "completed", priority: "high"},
		{
			name:      "unknown status",
			status:    "done",
			priority:  "low",
			wantField: "status",
			wantKind:  ViolationInvalidStatus,
		},
		{
			name:      "empty status",
			status:    "",
			priority:  "low",
			wantField: "status",
			wantKind:  ViolationInvalidStatus,
		},
		{
			name:      "unknown priority",
			status:    "pending",
			priority:  "urgent",
			wantField: "priority",
			wantKind:  ViolationInvalidPriority,
		},
		{
			name:      "case-sensitive status",
			status:    "Pending",
			priority:  "low",
			wantField: "status",
			wantKind:  ViolationInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, verr := Validate(Raw{
				Title:    "Task",
				Status:   tt.status,
				Priority: tt.priority,
			})

			if tt.wantKind != "" {
				if verr == nil {
					t.Fatalf("Expected violation %s, got none", tt.wantKind)
				}
				v := verr.First()
				if v.Field != tt.wantField || v.Kind != tt.wantKind {
					t.Errorf("Expected %s/%s, got %s/%s", tt.wantField, tt.wantKind, v.Field, v.Kind)
				}
				return
			}

			if verr != nil {
				t.Fatalf("Unexpected violations: %v", verr)
			}
			if string(fields.Status) != tt.status {
				t.Errorf("Expected status %s, got %s", tt.status, fields.Status)
			}
			if string(fields.Priority) != tt.priority {
				t.Errorf("Expected priority %s, got %s", tt.priority, fields.Priority)
			}
		})
	}
}

func TestValidateCollectsOneViolationPerField(t *testing.T) {
	_, verr := Validate(Raw{
		Title:    "",
		Status:   "done",
		Priority: "urgent",
	})
	if verr == nil {
		t.Fatal("Expected violations, got none")
	}
	if len(verr.Violations) != 3 {
		t.Fatalf("Expected 3 violations, got %d: %v", len(verr.Violations), verr.Violations)
	}

	// Field order is stable: title, description, status, priority.
	wantFields := []string{"title", "status", "priority"}
	for i, want := range wantFields {
		if verr.Violations[i].Field != want {
			t.Errorf("Violation %d: expected field %s, got %s", i, want, verr.Violations[i].Field)
		}
	}
}
