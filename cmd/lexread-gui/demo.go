package main

const demoArticle = `Reading Across Languages

Select any passage in this article with the mouse, or double-click a word. The floating window picks up the selection and translates it into your target language. You can also type or paste straight into the upper pane; translation starts once you pause.

Drag the window by its header, resize it from the bottom-right corner, and move the line between the panes to give either side more room. Pin the window to keep it from moving while you read.

A Short History of Machine Translation

Early systems in the 1950s relied on hand-written dictionaries and grammar rules. They handled short, formulaic sentences and failed on idioms, ambiguity and anything resembling ordinary speech.

Statistical methods replaced most rule-based systems in the 1990s. Instead of encoding grammar by hand, they learned word and phrase correspondences from large collections of translated documents, such as parliamentary records published in several languages.

Neural models took over in the 2010s. They read a whole sentence before producing output, which made translations noticeably more fluent. Large language models extended this further: they can follow instructions about tone, keep formatting intact, and explain their choices when asked.

Why Context Still Matters

A word such as "bank" or "spring" has several unrelated meanings. Translating a single word in isolation forces the system to guess. Selecting the full sentence usually produces a better result than selecting a lone word.

"Language is the road map of a culture. It tells you where its people come from and where they are going."

Try selecting the quotation above, then switch the target language in Settings. The current passage is translated again automatically.`
