package window

import "errors"

var (
	errInvalidLength    = errors.New("window: size must be positive")
	errInvalidAlpha     = errors.New("window: invalid shape parameter")
	errMismatchedLength = errors.New("window: samples and coefficients length mismatch")
)

func validateLength(size int) error {
	if size <= 0 {
		return errInvalidLength
	}

	return nil
}

func validateTukey(size int, alpha float64) error {
	if err := validateLength(size); err != nil {
		return err
	}

	if alpha < 0 || alpha > 1 {
		return errInvalidAlpha
	}

	return nil
}

func validateGauss(size int, alpha float64) error {
	if err := validateLength(size); err != nil {
		return err
	}

	if alpha <= 0 {
		return errInvalidAlpha
	}

	return nil
}
