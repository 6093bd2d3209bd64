package books

import (
	"errors"
	"testing"
)

func TestDraftValidate(t *testing.T) {
	tests := []struct {
		name  string
		draft Draft
		want  []ValidationError
	}{
		{
			name:  "valid",
			draft: Draft{Title: "1984", Author: "Orwell", PublishedYear: 1949},
		},
		{
			name:  "empty title",
			draft: Draft{Title: "", Author: "Orwell", PublishedYear: 1949},
			want:  []ValidationError{{Field: FieldTitle, Reason: ReasonRequired}},
		},
		{
			name:  "whitespace author",
			draft: Draft{Title: "1984", Author: "   ", PublishedYear: 1949},
			want:  []ValidationError{{Field: FieldAuthor, Reason: ReasonRequired}},
		},
		{
			name:  "absent year",
			draft: Draft{Title: "1984", Author: "Orwell"},
			want:  []ValidationError{{Field: FieldPublishedYear, Reason: ReasonOutOfRange}},
		},
		{
			name:  "year below range",
			draft: Draft{Title: "1984", Author: "Orwell", PublishedYear: 999},
			want:  []ValidationError{{Field: FieldPublishedYear, Reason: ReasonOutOfRange}},
		},
		{
			name:  "year above range",
			draft: Draft{Title: "1984", Author: "Orwell", PublishedYear: 2101},
			want:  []ValidationError{{Field: FieldPublishedYear, Reason: ReasonOutOfRange}},
		},
		{
			name:  "bounds are inclusive",
			draft: Draft{Title: "a", Author: "b", PublishedYear: 1000},
		},
		{
			name:  "upper bound inclusive",
			draft: Draft{Title: "a", Author: "b", PublishedYear: 2100},
		},
		{
			name:  "all fields fail together",
			draft: Draft{},
			want: []ValidationError{
				{Field: FieldTitle, Reason: ReasonRequired},
				{Field: FieldAuthor, Reason: ReasonRequired},
				{Field: FieldPublishedYear, Reason: ReasonOutOfRange},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			if len(tt.want) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			if len(verrs) != len(tt.want) {
				t.Fatalf("expected %d errors, got %d: %v", len(tt.want), len(verrs), verrs)
			}
			for i := range tt.want {
				if verrs[i] != tt.want[i] {
					t.Errorf("error %d: expected %+v, got %+v", i, tt.want[i], verrs[i])
				}
			}
		})
	}
}

func TestValidationErrorMessages(t *testing.T) {
	err := Draft{}.Validate()
	want := "title is required; author is required; published year must be between 1000 and 2100"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}

	verrs := err.(ValidationErrors)
	if _, ok := verrs.ByField(FieldAuthor); !ok {
		t.Error("expected author error")
	}
}
