package domain

import "fmt"

// Classification tells whether an article was imported from an existing
// source or written for this site.
type Classification string

const (
	ClassificationImported Classification = "imported"
	ClassificationNew      Classification = "new"
)

func (c Classification) String() string {
	return string(c)
}

func (c Classification) IsImported() bool {
	return c == ClassificationImported
}

func (c Classification) IsNew() bool {
	return c == ClassificationNew
}

func (c Classification) Validate() error {
	switch c {
	case ClassificationImported, ClassificationNew:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidArticleType, string(c))
	}
}

func ParseClassification(s string) (Classification, error) {
	c := Classification(s)
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}
