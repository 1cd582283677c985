/*
 *  MIT License
 *
 *  Copyright (c) 2020 Nicolas JUHEL
 *
 *  Permission is hereby granted, free of charge, to any person obtaining a copy
 *  of this software and associated documentation files (the "Software"), to deal
 *  in the Software without restriction, including without limitation the rights
 *  to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *  copies of the Software, and to permit persons to whom the Software is
 *  furnished to do so, subject to the following conditions:
 *
 *  The above copyright notice and this permission notice shall be included in all
 *  copies or substantial portions of the Software.
 *
 *  THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *  IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *  FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *  AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *  LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *  OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *  SOFTWARE.
 *
 */

// Package nodepath models the nested path grammar used throughout the node
// enumerator: filesystem segments joined by '/', archive-entry crossings
// joined by '!', and compression-wrapper crossings joined by '%'. It also
// implements the glob dialect used to match those paths (?, *, **, ***,
// comma-separated alternatives, '~'-prefixed excludes) plus the lookInto
// discriminator ("<fmt-glob>:<path-glob>") and path-equivalence regexes.
//
// Ordinary single-segment wildcards delegate to github.com/bmatcuk/doublestar/v4;
// the '!'/'%' crossing semantics and the include/exclude/last-match-wins
// alternative list are bespoke, since no example in this codebase's ecosystem
// models nested-container paths.
package nodepath
