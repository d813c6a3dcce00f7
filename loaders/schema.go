package loaders

// documentSchema constrains the generic document form a model file decodes
// into. Statements are validated structurally before construction so that
// shape errors carry a file position instead of surfacing mid-build.
const documentSchema = `
#Document: [...#Statement]

#Statement: #Atomics | #ObjectDecl | #CompoundDecl | #ReactiveRule |
	#Reaction | #TransformationalRule | #PowerFrame | #DeonticFrame

#Atomics: close({
	atomics: [...string]
})

#ObjectDecl: close({
	object: string
	content?: [...#Statement]
	descriptors?: [...#Ref]
	alias?: string
})

#CompoundDecl: close({
	object: string
	params: [...string]
	content: [...#Statement]
	alias?: string
})

#ReactiveRule: close({
	event:    #Event
	reaction: #Event
	alias?:   string
})

#Reaction: close({
	reaction: #Statement
})

#TransformationalRule: close({
	condition:  #Condition
	conclusion: #Conclusion
	alias?:     string
})

#PowerFrame: close({
	position:    "power" | "liability" | "disability" | "immunity"
	action:      #ActionSpec
	consequence: #Event
	holder?:     #Ref
	alias?:      string
})

#DeonticFrame: close({
	position:      "duty" | "prohibition" | "claim" | "privilege"
	action:        #ActionSpec
	holder?:       #Ref
	counterparty?: #Ref
	violation?:    #DeonticSpec
	fulfillment?:  #DeonticSpec
	termination?:  #DeonticSpec
	alias?:        string
})

#DeonticSpec: #Event | #Condition | close({
	event: #Event
})

#ActionName: string & =~"^#"

#ActionSpec: #ActionName | #RefinedEvent | #AgentAction

#Event: #ActionName | #RefinedEvent | #AgentAction |
	close({plus: #Ref}) | close({minus: #Ref}) | #Gains

#RefinedEvent: close({
	event:      #ActionName
	refinement: {[string]: #Ref}
}) | close({
	reference:  #ActionName
	refinement: {[string]: #Ref}
})

#AgentAction: close({
	agent:  #Ref
	action: #ActionName
})

#Gains: close({
	entity:     #Ref
	gains:      bool
	descriptor: #Ref
})

#Has: close({
	entity:     #Ref
	has:        bool
	descriptor: #Ref
})

#Condition: bool | #PlainName | #Has |
	close({plus: #Ref}) | close({minus: #Ref}) | #RefinedRef | #ScopedRef

#Conclusion: #PlainName |
	close({plus: #Ref}) | close({minus: #Ref}) | #Gains

#PlainName: string & !~"^#"

#Ref: #PlainName | #ScopedRef | #RefinedRef

#ScopedRef: close({
	scope: #Ref
	name:  #PlainName | #ScopedRef | #RefinedRef
})

#RefinedRef: close({
	object:     #PlainName
	refinement: {[string]: #Ref}
}) | close({
	reference:  #PlainName
	refinement: {[string]: #Ref}
})
`
