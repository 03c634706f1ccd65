package entity

// TokenStream is a pull sequence of generated text fragments.
// After Next returns false, Err reports why the sequence ended.
type TokenStream interface {
	Next() bool
	Current() string
	Err() error
	Close() error
}
