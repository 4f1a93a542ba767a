// SPDX-License-Identifier: MPL-2.0

// Package markdown extracts runnable fenced code blocks from Markdown documents.
//
// A block is runnable when its info string names a language ("```java").
// An HTML comment placed directly before a block opts it out:
//
//	<!-- exemd-skip -->
//	```java
//	// not executed
//	```
//
// The same effect is available inline with an info attribute: "```java exemd-skip".
package markdown
