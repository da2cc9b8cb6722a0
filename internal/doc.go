// internal is internal packages for uread.
//
// The classify, detwingle, and normalize packages are leaf packages; the
// repair package composes them into the per-chunk pipeline that lib-uread
// drives. The ureaderr package is shared by everything for error
// construction.
package internal
