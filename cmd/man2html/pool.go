package main

import (
	"context"

	man2html "github.com/alnah/go-man2html"
)

// CLIConverter converts one page. *man2html.Converter satisfies it.
type CLIConverter interface {
	Convert(ctx context.Context, input man2html.Input) (*man2html.ConvertResult, error)
}

// Pool hands out converters to batch workers.
type Pool interface {
	Acquire() CLIConverter
	Release(CLIConverter)
	InitError() error
	Size() int
	Close() error
}

var _ CLIConverter = (*man2html.Converter)(nil)

// converterPool adapts *man2html.ConverterPool to Pool.
type converterPool struct {
	pool *man2html.ConverterPool
}

var _ Pool = (*converterPool)(nil)

func newConverterPool(size int, opts ...man2html.Option) Pool {
	return &converterPool{pool: man2html.NewConverterPool(size, opts...)}
}

// Acquire returns nil when the converter could not be created. The
// explicit check keeps a nil *Converter out of the interface.
func (p *converterPool) Acquire() CLIConverter {
	conv := p.pool.Acquire()
	if conv == nil {
		return nil
	}
	return conv
}

func (p *converterPool) Release(c CLIConverter) {
	if conv, ok := c.(*man2html.Converter); ok {
		p.pool.Release(conv)
	}
}

func (p *converterPool) InitError() error { return p.pool.InitError() }
func (p *converterPool) Size() int        { return p.pool.Size() }
func (p *converterPool) Close() error     { return p.pool.Close() }
