// Package markup serializes component trees as nested markup documents.
//
// The document element holds one page element per page, and every
// component becomes an element named by its type tag:
//
//	<document>
//		<page number="1">
//			<box fromX="10" fromY="20" toX="110" toY="70">
//				<text fromX="12" fromY="22" toX="40" toY="32" font="Helvetica" size="10">Total</text>
//			</box>
//		</page>
//	</document>
//
// Trees are built with golang.org/x/net/html nodes and written by
// html.Render, which escapes text and attribute values.
package markup
