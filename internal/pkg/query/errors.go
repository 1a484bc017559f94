package query

// ParameterError - the parameters are missing or malformed, no external call has been made.
type ParameterError struct {
	err error
}

// AuthenticationError - the credentials were rejected by the platform.
type AuthenticationError struct {
	err error
}

// TransportError - the platform is unreachable.
type TransportError struct {
	err error
}

// ServerError - the platform returned an error or the job failed.
type ServerError struct {
	err error
}

// FilesystemError - the output directory cannot be created or a file cannot be written or renamed.
type FilesystemError struct {
	err error
}

func NewParameterError(err error) *ParameterError {
	return &ParameterError{err: err}
}

func NewAuthenticationError(err error) *AuthenticationError {
	return &AuthenticationError{err: err}
}

func NewTransportError(err error) *TransportError {
	return &TransportError{err: err}
}

func NewServerError(err error) *ServerError {
	return &ServerError{err: err}
}

func NewFilesystemError(err error) *FilesystemError {
	return &FilesystemError{err: err}
}

func (e *ParameterError) Error() string {
	return e.err.Error()
}

func (e *ParameterError) Unwrap() error {
	return e.err
}

func (e *AuthenticationError) Error() string {
	return "authentication failed: " + e.err.Error()
}

func (e *AuthenticationError) Unwrap() error {
	return e.err
}

func (e *TransportError) Error() string {
	return "platform is unreachable: " + e.err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.err
}

func (e *ServerError) Error() string {
	return e.err.Error()
}

func (e *ServerError) Unwrap() error {
	return e.err
}

func (e *FilesystemError) Error() string {
	return e.err.Error()
}

func (e *FilesystemError) Unwrap() error {
	return e.err
}
