// Package syntax is the frontend for do-blocks written in JavaScript-like
// host source.
//
// [ParseBlock] reads a single block, [Blocks] finds the blocks of a source
// file, and [Rewrite] and [RewriteMarkdown] replace each block with its
// lowered form:
//
//	const name = do {
//	  user <- findUser(id);
//	  {first, last} <- user.profile;
//	  `${first} ${last}`
//	};
//
// becomes
//
//	const name = findUser(id).chain(user => user.profile.map(({first, last}) => `${first} ${last}`));
package syntax
