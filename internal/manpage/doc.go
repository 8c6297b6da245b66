// Package manpage locates installed manual pages and reads their troff
// source.
//
// Locate asks the system's man(1) for the page file (man -w NAME); Open
// reads that file, decompressing it on the fly when it carries the gzip
// magic bytes; ReadLines splits the source into the lines the converter
// consumes.
package manpage
