package hxtitle

import "errors"

// Sentinel errors for component operations.
var (
	ErrNotFound         = errors.New("hxtitle: resource not found")
	ErrMethodNotAllowed = errors.New("hxtitle: method not allowed")
	ErrDecryptFailed    = errors.New("hxtitle: parameter decryption failed")
	ErrSignatureInvalid = errors.New("hxtitle: signature verification failed")
	ErrInvalidFormat    = errors.New("hxtitle: invalid parameter format")
	ErrHydrationFailed  = errors.New("hxtitle: hydration failed")
	ErrNotRegistered    = errors.New("hxtitle: component not registered")
)

// Mount errors. Both are fatal at startup: the host page does not satisfy
// the attachment contract and nothing has been rendered into it.
var (
	ErrAttachmentNotFound  = errors.New("hxtitle: attachment point not found")
	ErrAttachmentAmbiguous = errors.New("hxtitle: attachment point is not unique")
)

// IsNotFound checks if err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDecryptionError checks if err is a decryption or signature error.
func IsDecryptionError(err error) bool {
	return errors.Is(err, ErrDecryptFailed) || errors.Is(err, ErrSignatureInvalid)
}

// IsBadRequest reports whether err was caused by the request's props rather
// than by the server.
func IsBadRequest(err error) bool {
	return IsDecryptionError(err) || errors.Is(err, ErrInvalidFormat)
}

// IsAttachmentError reports whether err is a host page contract violation.
func IsAttachmentError(err error) bool {
	return errors.Is(err, ErrAttachmentNotFound) || errors.Is(err, ErrAttachmentAmbiguous)
}
